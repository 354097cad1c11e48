package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     int64
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func TestRedisRateLimiterAllow(t *testing.T) {
	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisRateLimiter
		if !l.Allow("10.0.0.1") {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("allow when count within max", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 2}
		l := newRedisRateLimiter(mock, 2*time.Minute, 5)
		if !l.Allow(" 10.0.0.1 ") {
			t.Fatalf("expected allow when count <= max")
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "assessment:rl:10.0.0.1" {
			t.Fatalf("unexpected key normalization, got %+v", mock.lastKeys)
		}
		if len(mock.lastArgs) != 1 || mock.lastArgs[0] != int64(120000) {
			t.Fatalf("expected TTL millis=120000, got %+v", mock.lastArgs)
		}
		if mock.lastScript != redisAllowScript {
			t.Fatalf("expected script to match")
		}
	})

	t.Run("blank key uses unknown bucket", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 1}
		l := newRedisRateLimiter(mock, time.Minute, 5)
		l.Allow("")
		if mock.lastKeys[0] != "assessment:rl:unknown" {
			t.Fatalf("unexpected key %q", mock.lastKeys[0])
		}
	})

	t.Run("deny when count exceeds max", func(t *testing.T) {
		l := newRedisRateLimiter(&mockRedisEvaler{result: 6}, time.Minute, 5)
		if l.Allow("10.0.0.1") {
			t.Fatalf("expected deny when count > max")
		}
	})

	t.Run("redis error fail-open", func(t *testing.T) {
		l := newRedisRateLimiter(&mockRedisEvaler{err: errors.New("redis down")}, time.Minute, 5)
		if !l.Allow("10.0.0.1") {
			t.Fatalf("expected fail-open on redis errors")
		}
	})
}

func TestRedisRateLimiterWithMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisRateLimiter(client, time.Minute, 2)
	if !l.Allow("10.0.0.9") || !l.Allow("10.0.0.9") {
		t.Fatalf("expected first two requests allowed")
	}
	if l.Allow("10.0.0.9") {
		t.Fatalf("expected third request rejected")
	}
	if ttl := mr.TTL("assessment:rl:10.0.0.9"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected key ttl within window, got %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if !l.Allow("10.0.0.9") {
		t.Fatalf("expected window reset after expiry")
	}
}

func TestNewRedisRateLimiterNilClient(t *testing.T) {
	if l := NewRedisRateLimiter(nil, time.Minute, 5); l != nil {
		t.Fatalf("expected nil limiter for nil client")
	}
}
