package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const waitPollInterval = 50 * time.Millisecond

// RateLimiter is a fixed-window request counter shared by every process
// using the same key, so parallel scanner runs on one API key stay under the cap.
type RateLimiter struct {
	rdb    *redis.Client
	key    string
	limit  int
	window time.Duration
}

func NewRateLimiter(c *Client, key string, limit int, window time.Duration) *RateLimiter {
	if window < time.Millisecond {
		window = time.Second
	}
	return &RateLimiter{
		rdb:    c.rdb,
		key:    "ratelimit:" + key,
		limit:  limit,
		window: window,
	}
}

// Allow counts one request against the current window and reports whether it fits.
func (rl *RateLimiter) Allow(ctx context.Context) (bool, error) {
	slot := time.Now().UnixMilli() / rl.window.Milliseconds()
	key := rl.key + ":" + strconv.FormatInt(slot, 10)

	var incr *redis.IntCmd
	_, err := rl.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.PExpire(ctx, key, rl.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis: rate limit allow %s: %w", rl.key, err)
	}

	return incr.Val() <= int64(rl.limit), nil
}

// Wait blocks until a request is allowed or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		allowed, err := rl.Allow(ctx)
		if err != nil {
			return err
		}
		if allowed {
			return nil
		}

		timer := time.NewTimer(waitPollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("redis: rate limit wait %s: %w", rl.key, ctx.Err())
		case <-timer.C:
		}
	}
}
