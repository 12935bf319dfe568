package waitlist

import (
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestRateLimiterBurstAndRefill(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	rl := NewRateLimiter(
		WithLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2}),
		WithClock(clock.Now),
	)

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two requests should be allowed (burst)")
	}
	if rl.Allow("a") {
		t.Fatal("third request should be denied")
	}
	if !rl.Allow("b") {
		t.Fatal("other clients have their own bucket")
	}

	clock.Advance(time.Second)
	if !rl.Allow("a") {
		t.Fatal("request after refill should be allowed")
	}

	stats := rl.Stats()
	if stats.Clients != 2 || stats.RequestCount != 5 || stats.DeniedCount != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(
		WithLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1}),
		WithEnabled(false),
	)
	for i := 0; i < 10; i++ {
		if !rl.Allow("a") {
			t.Fatalf("request %d denied with limiter disabled", i)
		}
	}

	var nilLimiter *RateLimiter
	if !nilLimiter.Allow("a") {
		t.Fatal("nil limiter should allow")
	}
}

func TestRateLimiterPrune(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	rl := NewRateLimiter(
		WithLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2}),
		WithClock(clock.Now),
	)
	rl.Allow("idle")
	clock.Advance(30 * time.Second)
	rl.Allow("active")
	rl.Allow("active")

	if removed := rl.Prune(10 * time.Second); removed != 1 {
		t.Fatalf("Prune removed %d buckets, want 1", removed)
	}
	if stats := rl.Stats(); stats.Clients != 1 {
		t.Fatalf("expected 1 remaining client, got %d", stats.Clients)
	}
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/waitlist", nil)
	req.RemoteAddr = "203.0.113.7:5123"
	if got := clientKey(req, false); got != "203.0.113.7" {
		t.Fatalf("clientKey = %q", got)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.2, 10.0.0.1")
	if got := clientKey(req, false); got != "203.0.113.7" {
		t.Fatalf("clientKey ignoring forwarded = %q", got)
	}
	if got := clientKey(req, true); got != "198.51.100.2" {
		t.Fatalf("clientKey with trusted forwarded = %q", got)
	}

	req.Header.Set("X-Forwarded-For", " , 10.0.0.1")
	if got := clientKey(req, true); got != "203.0.113.7" {
		t.Fatalf("clientKey with empty first hop = %q", got)
	}
}

func TestRateLimiterNilStats(t *testing.T) {
	var rl *RateLimiter
	if stats := rl.Stats(); stats != (RateLimitStats{}) {
		t.Fatalf("nil limiter stats = %+v", stats)
	}
}
