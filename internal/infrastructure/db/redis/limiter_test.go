package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, maxAttempts int, window time.Duration) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, maxAttempts, window), mr
}

func TestLoginLimiter_ThrottlesAfterMaxAttempts(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		throttled, err := limiter.TooManyAttempts(ctx, "alice")
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if throttled {
			t.Fatalf("throttled after %d failures, limit is 3", i)
		}
		if err := limiter.RecordFailure(ctx, "alice"); err != nil {
			t.Fatalf("record failure: %v", err)
		}
	}

	throttled, err := limiter.TooManyAttempts(ctx, "alice")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !throttled {
		t.Fatalf("expected throttling after 3 failures")
	}
}

func TestLoginLimiter_PerUsername(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if err := limiter.RecordFailure(ctx, "alice"); err != nil {
		t.Fatalf("record failure: %v", err)
	}

	throttled, err := limiter.TooManyAttempts(ctx, "bob")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if throttled {
		t.Fatalf("bob throttled by alice's failures")
	}
}

func TestLoginLimiter_Reset(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if err := limiter.RecordFailure(ctx, "alice"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if err := limiter.Reset(ctx, "alice"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	throttled, err := limiter.TooManyAttempts(ctx, "alice")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if throttled {
		t.Fatalf("still throttled after reset")
	}
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if err := limiter.RecordFailure(ctx, "alice"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	throttled, err := limiter.TooManyAttempts(ctx, "alice")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if throttled {
		t.Fatalf("still throttled after the window expired")
	}
}
