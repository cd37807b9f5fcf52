package clientstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Persister stores the partialized state of a session.
type Persister interface {
	Load(ctx context.Context, sessionID string) (Persisted, bool, error)
	Save(ctx context.Context, sessionID string, p Persisted) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryPersister keeps snapshots in process memory with an expiry.
type MemoryPersister struct {
	client *cache.Cache
	ttl    time.Duration
}

func NewMemoryPersister(ttl time.Duration) *MemoryPersister {
	return &MemoryPersister{
		client: cache.New(ttl, 10*time.Minute),
		ttl:    ttl,
	}
}

func (m *MemoryPersister) Load(_ context.Context, sessionID string) (Persisted, bool, error) {
	v, ok := m.client.Get(sessionID)
	if !ok {
		return Persisted{}, false, nil
	}
	p, ok := v.(Persisted)
	if !ok {
		return Persisted{}, false, fmt.Errorf("unexpected value type %T in session cache", v)
	}
	return p, true, nil
}

func (m *MemoryPersister) Save(_ context.Context, sessionID string, p Persisted) error {
	m.client.Set(sessionID, p, m.ttl)
	return nil
}

func (m *MemoryPersister) Delete(_ context.Context, sessionID string) error {
	m.client.Delete(sessionID)
	return nil
}

const redisKeyPrefix = "filesearch:session:"

// RedisPersister stores snapshots as JSON strings so they outlive the process.
type RedisPersister struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisPersister parses redisURL and checks the connection.
func NewRedisPersister(ctx context.Context, redisURL string, ttl time.Duration) (*RedisPersister, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("empty redis url")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse Redis URL: %w", err)
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	return &RedisPersister{rdb: rdb, ttl: ttl}, nil
}

func (r *RedisPersister) Load(ctx context.Context, sessionID string) (Persisted, bool, error) {
	val, err := r.rdb.Get(ctx, redisKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return Persisted{}, false, nil
	}
	if err != nil {
		return Persisted{}, false, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	var p Persisted
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return Persisted{}, false, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return p, true, nil
}

func (r *RedisPersister) Save(ctx context.Context, sessionID string, p Persisted) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", sessionID, err)
	}
	return r.rdb.Set(ctx, redisKeyPrefix+sessionID, data, r.ttl).Err()
}

func (r *RedisPersister) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, redisKeyPrefix+sessionID).Err()
}

func (r *RedisPersister) Close() error {
	return r.rdb.Close()
}
