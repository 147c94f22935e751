package narrative

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	applog "github.com/pathlet/pathlet-api/internal/platform/logging"
)

// ErrCacheMiss is returned by Cache.Get when no fresh entry exists.
var ErrCacheMiss = errors.New("narrative cache miss")

// Cache stores generated narratives by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, text string) error
}

// CacheKey derives a stable key from the provider, model and prompt.
func CacheKey(provider, model, prompt string) string {
	sum := sha256.Sum256([]byte(provider + "\x00" + model + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}

// Cached wraps a Generator with a Cache. Cache failures are logged and
// otherwise ignored.
type Cached struct {
	next  Generator
	cache Cache
	now   func() time.Time
}

// NewCached returns next wrapped with cache.
func NewCached(next Generator, cache Cache) *Cached {
	return &Cached{next: next, cache: cache, now: time.Now}
}

func (c *Cached) Provider() string { return c.next.Provider() }
func (c *Cached) Model() string    { return c.next.Model() }

// Generate returns the cached narrative for prompt or generates and stores a
// new one.
func (c *Cached) Generate(ctx context.Context, prompt string) (string, error) {
	start := c.now()
	key := CacheKey(c.next.Provider(), c.next.Model(), prompt)

	text, err := c.cache.Get(ctx, key)
	if err == nil {
		applog.LogNarrativeEvent(ctx, c.Provider(), c.Model(), "cached", c.now().Sub(start), nil)
		return text, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		applog.LogError(ctx, "narrative cache read failed", err)
	}

	text, err = c.next.Generate(ctx, prompt)
	if err != nil {
		outcome := "failed"
		if errors.Is(err, ErrDisabled) {
			outcome = "disabled"
		}
		applog.LogNarrativeEvent(ctx, c.Provider(), c.Model(), outcome, c.now().Sub(start), err)
		return "", err
	}
	applog.LogNarrativeEvent(ctx, c.Provider(), c.Model(), "generated", c.now().Sub(start), nil)

	if err := c.cache.Set(ctx, key, text); err != nil {
		applog.LogError(ctx, "narrative cache write failed", err)
	}
	return text, nil
}

// MemoryCache is an in-process Cache with a fixed entry lifetime.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	text      string
	expiresAt time.Time
}

// NewMemoryCache creates a MemoryCache. A ttl of zero keeps entries forever.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrCacheMiss
	}
	if !m.expired(e) {
		return e.text, nil
	}

	// A Set may have replaced the entry since the read lock was released.
	m.mu.Lock()
	if cur, ok := m.entries[key]; ok {
		if !m.expired(cur) {
			m.mu.Unlock()
			return cur.text, nil
		}
		delete(m.entries, key)
	}
	m.mu.Unlock()
	applog.LogDebug(ctx, "narrative cache entry expired", zap.String("key", key))
	return "", ErrCacheMiss
}

func (m *MemoryCache) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}

func (m *MemoryCache) Set(_ context.Context, key, text string) error {
	e := memoryEntry{text: text}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

// size returns the number of stored entries, including expired ones not yet
// evicted.
func (m *MemoryCache) size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Compile-time interface checks
var (
	_ Generator = (*Cached)(nil)
	_ Cache     = (*MemoryCache)(nil)
)
