package service

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestMemoryRateLimiterFixedWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := NewMemoryRateLimiter(time.Minute, 5, clock.Now)

	for i := 0; i < 5; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatalf("sixth request within window should be rejected")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatalf("other identities keep their own window")
	}

	clock.Advance(61 * time.Second)
	if !l.Allow("10.0.0.1") {
		t.Fatalf("expected window reset after expiry")
	}
}

func TestMemoryRateLimiterNormalizesKeys(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	l := NewMemoryRateLimiter(time.Minute, 1, clock.Now)

	if !l.Allow("  ") {
		t.Fatalf("first unknown request should pass")
	}
	if l.Allow("") {
		t.Fatalf("blank keys share the unknown bucket")
	}
	if !l.Allow(" Client-A ") {
		t.Fatalf("expected allow")
	}
	if l.Allow("client-a") {
		t.Fatalf("expected keys to be case and space insensitive")
	}
}

func TestMemoryRateLimiterSweepsExpiredEntries(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	l := NewMemoryRateLimiter(time.Minute, 5, clock.Now).(*memoryRateLimiter)

	for _, key := range []string{"a", "b", "c"} {
		l.Allow(key)
	}
	if l.size() != 3 {
		t.Fatalf("expected 3 entries, got %d", l.size())
	}
	clock.Advance(2 * time.Minute)
	l.Allow("d")
	if l.size() != 1 {
		t.Fatalf("expected expired entries swept, got %d", l.size())
	}
}

func TestMemoryRateLimiterDefaults(t *testing.T) {
	l := NewMemoryRateLimiter(0, 0, nil).(*memoryRateLimiter)
	if l.window != DefaultRateLimitWindow || l.max != DefaultRateLimitMax {
		t.Fatalf("unexpected defaults %v/%d", l.window, l.max)
	}
}
