package waitlist

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimitConfig defines the per-client submission budget.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustainable rate (tokens added per second).
	RequestsPerSecond float64

	// BurstSize is the maximum number of requests allowed in a burst.
	BurstSize int
}

// DefaultRateLimit allows a short burst, then one submission every five seconds.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 0.2, BurstSize: 5}

// tokenBucket implements the token bucket algorithm for rate limiting.
type tokenBucket struct {
	tokens     float64
	lastUpdate time.Time
	ratePerSec float64
	maxTokens  float64
}

func newTokenBucket(cfg RateLimitConfig, now time.Time) *tokenBucket {
	return &tokenBucket{
		tokens:     float64(cfg.BurstSize),
		lastUpdate: now,
		ratePerSec: cfg.RequestsPerSecond,
		maxTokens:  float64(cfg.BurstSize),
	}
}

func (tb *tokenBucket) allow(now time.Time) bool {
	elapsed := now.Sub(tb.lastUpdate).Seconds()
	tb.tokens += elapsed * tb.ratePerSec
	if tb.tokens > tb.maxTokens {
		tb.tokens = tb.maxTokens
	}
	tb.lastUpdate = now

	if tb.tokens >= 1.0 {
		tb.tokens--
		return true
	}
	return false
}

// RateLimiter keeps one token bucket per client key.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	config  RateLimitConfig
	enabled bool
	now     func() time.Time

	requestCount int64
	deniedCount  int64
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithLimit overrides the per-client limit.
func WithLimit(cfg RateLimitConfig) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.config = cfg
	}
}

// WithEnabled enables or disables rate limiting.
func WithEnabled(enabled bool) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.enabled = enabled
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.now = now
	}
}

// NewRateLimiter creates a limiter using DefaultRateLimit unless overridden.
func NewRateLimiter(opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*tokenBucket),
		config:  DefaultRateLimit,
		enabled: true,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// Allow consumes a token for key and reports whether the request may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	if rl == nil || !rl.enabled {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.requestCount++

	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = newTokenBucket(rl.config, now)
		rl.buckets[key] = bucket
	}
	if bucket.allow(now) {
		return true
	}
	rl.deniedCount++
	return false
}

// Prune drops buckets that have refilled completely and been idle for at
// least idle. It returns the number removed.
func (rl *RateLimiter) Prune(idle time.Duration) int {
	if rl == nil {
		return 0
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	removed := 0
	for key, bucket := range rl.buckets {
		if now.Sub(bucket.lastUpdate) < idle {
			continue
		}
		refilled := bucket.tokens + now.Sub(bucket.lastUpdate).Seconds()*bucket.ratePerSec
		if refilled >= bucket.maxTokens {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// RateLimitStats summarizes limiter activity.
type RateLimitStats struct {
	Clients      int
	RequestCount int64
	DeniedCount  int64
}

// Stats returns the current counters.
func (rl *RateLimiter) Stats() RateLimitStats {
	if rl == nil {
		return RateLimitStats{}
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return RateLimitStats{
		Clients:      len(rl.buckets),
		RequestCount: rl.requestCount,
		DeniedCount:  rl.deniedCount,
	}
}

// clientKey identifies the caller by its remote address. The first
// X-Forwarded-For hop is used only when the server sits behind a proxy
// that sets the header, since clients can send any value.
func clientKey(r *http.Request, trustForwarded bool) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); trustForwarded && forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
