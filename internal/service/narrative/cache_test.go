package narrative

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, error) { return "", errors.New("down") }
func (failingCache) Set(context.Context, string, string) error   { return errors.New("down") }

func TestCacheKeyIsStableAndDistinct(t *testing.T) {
	a := CacheKey("huggingface", "m", "prompt")
	if a != CacheKey("huggingface", "m", "prompt") {
		t.Fatal("expected stable key")
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256, got %q", a)
	}
	for _, other := range []string{
		CacheKey("genai", "m", "prompt"),
		CacheKey("huggingface", "n", "prompt"),
		CacheKey("huggingface", "m", "prompt2"),
		CacheKey("huggingface", "mp", "rompt"),
	} {
		if other == a {
			t.Fatalf("expected distinct keys, got collision %s", other)
		}
	}
}

func TestCachedGeneratesOnceThenServesFromCache(t *testing.T) {
	mock := NewMock(map[string]string{"p": "text"})
	cached := NewCached(mock, NewMemoryCache(0))

	for range 3 {
		text, err := cached.Generate(context.Background(), "p")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "text" {
			t.Fatalf("unexpected text %q", text)
		}
	}
	if mock.Calls() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", mock.Calls())
	}
	if cached.Provider() != "mock" || cached.Model() != "mock-model" {
		t.Fatal("expected provider and model of the wrapped generator")
	}
}

func TestCachedDoesNotStoreFailures(t *testing.T) {
	mock := NewMock(nil).WithError(ErrUnavailable)
	cache := NewMemoryCache(0)
	cached := NewCached(mock, cache)

	if _, err := cached.Generate(context.Background(), "p"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if cache.size() != 0 {
		t.Fatalf("expected empty cache, got %d entries", cache.size())
	}
}

func TestCachedPassesDisabledThrough(t *testing.T) {
	cached := NewCached(Disabled{}, NewMemoryCache(0))
	if _, err := cached.Generate(context.Background(), "p"); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestCachedSurvivesBrokenCache(t *testing.T) {
	mock := NewMock(map[string]string{"p": "text"})
	cached := NewCached(mock, failingCache{})

	text, err := cached.Generate(context.Background(), "p")
	if err != nil || text != "text" {
		t.Fatalf("expected generated text despite cache failure, got %q, %v", text, err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(time.Hour)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := cache.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, err := cache.Get(ctx, "k"); err != nil || got != "v" {
		t.Fatalf("expected hit, got %q, %v", got, err)
	}

	now = now.Add(time.Hour)
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expired miss, got %v", err)
	}
	if cache.size() != 0 {
		t.Fatal("expected expired entry to be evicted")
	}
}

func TestMemoryCacheKeepsEntryReplacedDuringExpiry(t *testing.T) {
	start := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	now := start
	cache := NewMemoryCache(time.Minute)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	if err := cache.Set(ctx, "k", "old"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	now = start.Add(2 * time.Minute)

	// The first clock read happens between the read and write locks; a Set
	// issued there stands in for a concurrent writer.
	replaced := false
	cache.now = func() time.Time {
		if !replaced {
			replaced = true
			_ = cache.Set(ctx, "k", "new")
		}
		return now
	}

	got, err := cache.Get(ctx, "k")
	if err != nil || got != "new" {
		t.Fatalf("expected the fresh entry, got %q, %v", got, err)
	}
	if cache.size() != 1 {
		t.Fatalf("expected fresh entry to survive, got %d entries", cache.size())
	}
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := CacheKey("p", "m", string(rune('a'+i%4)))
			_ = cache.Set(ctx, key, "v")
			_, _ = cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	if cache.size() != 4 {
		t.Fatalf("expected 4 entries, got %d", cache.size())
	}
}

func TestMockBlocksUntilContextDone(t *testing.T) {
	mock := NewMock(nil)
	mock.Block = make(chan struct{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := mock.Generate(ctx, "p"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	close(mock.Block)
	text, err := mock.Generate(context.Background(), "p")
	if err != nil || text != "Narrative for: p" {
		t.Fatalf("unexpected result %q, %v", text, err)
	}
}

func TestPrompts(t *testing.T) {
	if got := AscendantsPrompt("1990-05-15", "New York"); got !=
		"List possible Ascendant signs with time ranges for 1990-05-15 in New York. Provide a brief description of each." {
		t.Fatalf("unexpected ascendants prompt %q", got)
	}
	if got := CareerPrompt("1990-05-15", "", "Oslo"); got !=
		"Provide career guidance based on astrology for someone born on 1990-05-15 at an unknown time in Oslo." {
		t.Fatalf("unexpected career prompt %q", got)
	}
	if got := GrowthPrompt("1990-05-15", "10:30 AM", "Oslo"); got !=
		"Provide personal growth insights based on astrology for someone born on 1990-05-15 at 10:30 AM in Oslo." {
		t.Fatalf("unexpected growth prompt %q", got)
	}
}
