package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisRateLimiter struct {
	client  redisEvaler
	window  time.Duration
	max     int
	prefix  string
	timeout time.Duration
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisRateLimiter crea un rate limiter compartido entre instancias.
func NewRedisRateLimiter(client *redis.Client, window time.Duration, max int) RateLimiter {
	if client == nil {
		return nil
	}
	return newRedisRateLimiter(client, window, max)
}

func newRedisRateLimiter(client redisEvaler, window time.Duration, max int) *redisRateLimiter {
	if window <= 0 {
		window = DefaultRateLimitWindow
	}
	if max <= 0 {
		max = DefaultRateLimitMax
	}
	return &redisRateLimiter{
		client:  client,
		window:  window,
		max:     max,
		prefix:  "assessment:rl:",
		timeout: 500 * time.Millisecond,
	}
}

// Allow falla abierto: si Redis no responde, el envio se permite.
func (l *redisRateLimiter) Allow(key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	redisKey := l.prefix + normalizeClientKey(key)
	millis := l.window.Milliseconds()
	if millis <= 0 {
		millis = DefaultRateLimitWindow.Milliseconds()
	}
	count, err := l.client.Eval(ctx, redisAllowScript, []string{redisKey}, millis).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
