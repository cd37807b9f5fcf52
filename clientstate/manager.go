package clientstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github/itish2003/filesearch/logger"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var ErrSessionNotFound = errors.New("session not found")

// Manager owns the live State of every session. Each State is single-writer
// UI state, but many requests can touch the same session at once, so all
// access goes through mu.
type Manager struct {
	mu        sync.Mutex
	live      *cache.Cache
	ttl       time.Duration
	persister Persister
	log       logger.ILogger
}

func NewManager(persister Persister, ttl time.Duration, log logger.ILogger) *Manager {
	return &Manager{
		live:      cache.New(ttl, 10*time.Minute),
		ttl:       ttl,
		persister: persister,
		log:       log,
	}
}

// Create starts an empty session and returns its id.
func (m *Manager) Create(ctx context.Context) (string, error) {
	id := uuid.New().String()
	state := NewState()

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.persister.Save(ctx, id, state.Partialize()); err != nil {
		return "", fmt.Errorf("failed to persist new session: %w", err)
	}
	m.live.Set(id, state, m.ttl)
	m.log.Info("SESSION", "Created session", map[string]interface{}{"session_id": id})
	return id, nil
}

// Snapshot returns a read-only view of the session.
func (m *Manager) Snapshot(ctx context.Context, id string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.load(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	return state.Snapshot(), nil
}

// APIKey returns the key stored for the session, or "".
func (m *Manager) APIKey(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.load(ctx, id)
	if err != nil {
		return "", err
	}
	return state.Key(), nil
}

// SelectedModel returns the model chosen for the session.
func (m *Manager) SelectedModel(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.load(ctx, id)
	if err != nil {
		return "", err
	}
	return state.SelectedModel, nil
}

// Update applies fn to a copy of the session and persists it. The live
// state is replaced only once the save succeeded, so a failed save leaves the
// session as it was.
func (m *Manager) Update(ctx context.Context, id string, fn func(*State)) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.load(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	next := current.clone()
	fn(next)

	if err := m.persister.Save(ctx, id, next.Partialize()); err != nil {
		return Snapshot{}, fmt.Errorf("failed to persist session %s: %w", id, err)
	}
	m.live.Set(id, next, m.ttl)
	return next.Snapshot(), nil
}

// Delete drops the session from memory and from the persister.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.live.Delete(id)
	return m.persister.Delete(ctx, id)
}

// load must be called with mu held. A session evicted from memory is
// rehydrated from the persister without its history.
func (m *Manager) load(ctx context.Context, id string) (*State, error) {
	if v, ok := m.live.Get(id); ok {
		return v.(*State), nil
	}

	persisted, ok, err := m.persister.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionNotFound
	}

	state := Rehydrate(persisted)
	m.live.Set(id, state, m.ttl)
	m.log.Debug("SESSION", "Rehydrated session", map[string]interface{}{"session_id": id})
	return state, nil
}
