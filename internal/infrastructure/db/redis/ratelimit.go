package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of a rate limit check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// SlidingWindow limits requests per key over a rolling window using a sorted
// set of request timestamps.
// Key format: ratelimit:<key>
type SlidingWindow struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewSlidingWindow(client *redis.Client, limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{client: client, limit: limit, window: window}
}

// Allow records the request and reports whether it fits in the window.
func (l *SlidingWindow) Allow(ctx context.Context, key string) (Decision, error) {
	key = "ratelimit:" + key
	now := time.Now()
	windowStart := now.Add(-l.window)

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	card := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	pipe.Expire(ctx, key, l.window)
	oldest := pipe.ZRangeWithScores(ctx, key, 0, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("rate limit: %w", err)
	}

	count := int(card.Val())
	reset := now.Add(l.window)
	if first := oldest.Val(); len(first) > 0 {
		reset = time.Unix(0, int64(first[0].Score)).Add(l.window)
	}

	if count >= l.limit {
		return Decision{Allowed: false, Limit: l.limit, Remaining: 0, Reset: reset}, nil
	}
	return Decision{Allowed: true, Limit: l.limit, Remaining: l.limit - count - 1, Reset: reset}, nil
}
