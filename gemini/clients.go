// Package gemini adapts the genai SDK to the File Search operations the
// services need. Keys arrive per request, so every call is made with a
// client bound to the caller's key.
package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"
)

// Clients keeps one genai client per API key for a while so that repeated
// calls reuse connections. Keys are cached by hash only. Concurrent first
// requests for the same key share one client.
type Clients struct {
	httpClient *http.Client
	httpOpts   genai.HTTPOptions
	clients    *cache.Cache
	sf         singleflight.Group
}

type Option func(*Clients)

// WithBaseURL points the clients at another endpoint. Tests use it with
// httptest servers.
func WithBaseURL(baseURL string) Option {
	return func(c *Clients) { c.httpOpts.BaseURL = baseURL }
}

func WithAPIVersion(version string) Option {
	return func(c *Clients) { c.httpOpts.APIVersion = version }
}

func NewClients(httpClient *http.Client, opts ...Option) *Clients {
	c := &Clients{
		httpClient: httpClient,
		clients:    cache.New(30*time.Minute, 10*time.Minute),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ForKey returns the client bound to apiKey.
func (c *Clients) ForKey(ctx context.Context, apiKey string) (*genai.Client, error) {
	sum := sha256.Sum256([]byte(apiKey))
	cacheKey := hex.EncodeToString(sum[:])

	if v, ok := c.clients.Get(cacheKey); ok {
		return v.(*genai.Client), nil
	}

	v, err, _ := c.sf.Do(cacheKey, func() (interface{}, error) {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:      apiKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPClient:  c.httpClient,
			HTTPOptions: c.httpOpts,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		c.clients.Set(cacheKey, client, cache.DefaultExpiration)
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*genai.Client), nil
}
