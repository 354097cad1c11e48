package service

import (
	"strings"
	"sync"
	"time"
)

const (
	DefaultRateLimitWindow = time.Minute
	DefaultRateLimitMax    = 5
)

// RateLimiter limita la frecuencia de envios por identidad del cliente.
type RateLimiter interface {
	Allow(key string) bool
}

// Clock permite inyectar el tiempo en tests.
type Clock func() time.Time

type windowEntry struct {
	count   int
	resetAt time.Time
}

type memoryRateLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	now       Clock
	entries   map[string]*windowEntry
	lastSweep time.Time
}

// NewMemoryRateLimiter crea un rate limiter de ventana fija en memoria.
// Sirve para una sola instancia; con varias replicas usar NewRedisRateLimiter.
func NewMemoryRateLimiter(window time.Duration, max int, now Clock) RateLimiter {
	if max <= 0 {
		max = DefaultRateLimitMax
	}
	if window <= 0 {
		window = DefaultRateLimitWindow
	}
	if now == nil {
		now = time.Now
	}
	return &memoryRateLimiter{
		window:  window,
		max:     max,
		now:     now,
		entries: make(map[string]*windowEntry),
	}
}

func (l *memoryRateLimiter) Allow(key string) bool {
	key = normalizeClientKey(key)

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.entries[key]
	if !ok || now.After(entry.resetAt) {
		l.entries[key] = &windowEntry{count: 1, resetAt: now.Add(l.window)}
		return true
	}
	if entry.count >= l.max {
		return false
	}
	entry.count++
	return true
}

// sweep elimina ventanas vencidas, como maximo una vez por ventana.
func (l *memoryRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for key, entry := range l.entries {
		if now.After(entry.resetAt) {
			delete(l.entries, key)
		}
	}
	l.lastSweep = now
}

func (l *memoryRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func normalizeClientKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "unknown"
	}
	return key
}
