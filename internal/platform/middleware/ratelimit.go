package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	applog "github.com/pathlet/pathlet-api/internal/platform/logging"
	"github.com/pathlet/pathlet-api/internal/platform/respond"
)

// limiterIdleTTL is how long an idle client's bucket is kept.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	perMinute int
	now       func() time.Time
	lastSweep time.Time
}

// NewRateLimiter allows requestsPerMinute requests per client with the given
// burst. Non-positive values fall back to 10 per minute and a burst of 1.
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		clients:   make(map[string]*clientLimiter),
		limit:     rate.Limit(float64(requestsPerMinute) / 60),
		burst:     burst,
		perMinute: requestsPerMinute,
		now:       time.Now,
	}
}

// Reserve takes a token for key and returns how long the caller would have
// to wait for it. A zero delay means the request may proceed.
func (l *RateLimiter) Reserve(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	res := c.limiter.ReserveN(now, 1)
	delay := res.DelayFrom(now)
	if delay > 0 {
		res.CancelAt(now)
	}
	return delay
}

// sweep drops idle buckets at most once per TTL. Callers hold l.mu.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < limiterIdleTTL {
		return
	}
	l.lastSweep = now
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > limiterIdleTTL {
			delete(l.clients, key)
		}
	}
}

// size returns the number of tracked clients.
func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Middleware rejects requests over the limit with a 429 problem and a
// Retry-After header. Requests whose path starts with a skip prefix are not
// counted.
func (l *RateLimiter) Middleware(skip ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range skip {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.perMinute))
			client := clientIP(r)
			if delay := l.Reserve(client); delay > 0 {
				retryAfter := int(math.Ceil(delay.Seconds()))
				applog.LogWarn(r.Context(), "rate limit exceeded",
					zap.String("client", client),
					zap.Int("retryAfter", retryAfter),
				)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				respond.WriteProblem(w, r, http.StatusTooManyRequests,
					"rate limit of "+strconv.Itoa(l.perMinute)+" requests per minute exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP uses RemoteAddr, which chi's RealIP middleware has already
// rewritten from proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
