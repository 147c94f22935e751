package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"
)

func newTestLimiter(perMinute, burst int, now *time.Time) *RateLimiter {
	l := NewRateLimiter(perMinute, burst)
	l.now = func() time.Time { return *now }
	return l
}

func TestRateLimiterReserve(t *testing.T) {
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(10, 2, &now)

	if d := l.Reserve("1.2.3.4"); d != 0 {
		t.Fatalf("first request delayed by %v", d)
	}
	if d := l.Reserve("1.2.3.4"); d != 0 {
		t.Fatalf("second request within burst delayed by %v", d)
	}
	d := l.Reserve("1.2.3.4")
	if d <= 0 || d > 6*time.Second {
		t.Fatalf("expected delay up to 6s after burst, got %v", d)
	}
	if d := l.Reserve("5.6.7.8"); d != 0 {
		t.Fatalf("other client delayed by %v", d)
	}

	// One token refills every six seconds at 10 per minute.
	now = now.Add(6 * time.Second)
	if d := l.Reserve("1.2.3.4"); d != 0 {
		t.Fatalf("request after refill delayed by %v", d)
	}
}

func TestRateLimiterRejectedRequestsDoNotConsumeTokens(t *testing.T) {
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(60, 1, &now)

	l.Reserve("c")
	for range 5 {
		if d := l.Reserve("c"); d <= 0 {
			t.Fatal("expected rejection")
		}
	}
	now = now.Add(time.Second)
	if d := l.Reserve("c"); d != 0 {
		t.Fatalf("expected token after one second, got delay %v", d)
	}
}

func TestRateLimiterSweepsIdleClients(t *testing.T) {
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(10, 1, &now)

	l.Reserve("a")
	l.Reserve("b")
	if l.size() != 2 {
		t.Fatalf("expected 2 clients, got %d", l.size())
	}

	now = now.Add(limiterIdleTTL + time.Minute)
	l.Reserve("c")
	if l.size() != 1 {
		t.Fatalf("expected idle clients to be swept, got %d", l.size())
	}
}

func TestNewRateLimiterDefaults(t *testing.T) {
	l := NewRateLimiter(0, 0)
	if l.perMinute != 10 || l.burst != 1 {
		t.Fatalf("unexpected defaults: perMinute=%d burst=%d", l.perMinute, l.burst)
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(10, 1, &now)
	h := l.Middleware("/healthz")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "203.0.113.7:5555"
		resp := httptest.NewRecorder()
		h.ServeHTTP(resp, req)
		return resp
	}

	if resp := send("/v1/numerology"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp := send("/v1/numerology")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	retry, err := strconv.Atoi(resp.Header().Get("Retry-After"))
	if err != nil || retry < 1 || retry > 6 {
		t.Fatalf("unexpected Retry-After %q", resp.Header().Get("Retry-After"))
	}
	if got := resp.Header().Get("X-RateLimit-Limit"); got != "10" {
		t.Fatalf("expected X-RateLimit-Limit 10, got %q", got)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected problem+json, got %q", ct)
	}
	var problem struct {
		Status int    `json:"status"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to decode problem: %v", err)
	}
	if problem.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected problem status %d", problem.Status)
	}

	for range 3 {
		if resp := send("/healthz"); resp.Code != http.StatusOK {
			t.Fatalf("health check should bypass the limiter, got %d", resp.Code)
		}
	}
}

func TestRateLimiterConcurrentUse(t *testing.T) {
	l := NewRateLimiter(600, 50)
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Reserve("shared") == 0 {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if allowed < 50 || allowed > 52 {
		t.Fatalf("expected about 50 allowed requests, got %d", allowed)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.4:1234"
	if got := clientIP(req); got != "198.51.100.4" {
		t.Fatalf("clientIP() = %q", got)
	}
	req.RemoteAddr = "198.51.100.4"
	if got := clientIP(req); got != "198.51.100.4" {
		t.Fatalf("clientIP() without port = %q", got)
	}
}
