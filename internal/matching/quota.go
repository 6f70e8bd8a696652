package matching

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Quota caps the number of swipes a user may record per UTC day.
// Counters live in redis and expire at midnight UTC. A nil client
// disables the cap entirely.
type Quota struct {
	redis *redis.Client
	limit int
}

func NewQuota(client *redis.Client, limit int) *Quota {
	return &Quota{redis: client, limit: limit}
}

func (q *Quota) key(userID string, now time.Time) string {
	return fmt.Sprintf("swipes:quota:%s:%s", userID, now.UTC().Format("2006-01-02"))
}

// Allow consumes one unit of today's quota. Returns false once the
// daily limit has been reached.
func (q *Quota) Allow(ctx context.Context, userID string) (bool, error) {
	if q.redis == nil || q.limit <= 0 {
		return true, nil
	}

	now := time.Now()
	key := q.key(userID, now)

	count, err := q.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to update swipe quota: %w", err)
	}
	if count == 1 {
		midnight := now.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
		q.redis.ExpireAt(ctx, key, midnight)
	}
	if count > int64(q.limit) {
		return false, nil
	}
	return true, nil
}

// Refund returns one unit of today's quota. Used when a consumed
// unit turns out not to correspond to a new swipe.
func (q *Quota) Refund(ctx context.Context, userID string) {
	if q.redis == nil || q.limit <= 0 {
		return
	}
	q.redis.Decr(ctx, q.key(userID, time.Now()))
}

// Remaining reports how many swipes the user has left today
func (q *Quota) Remaining(ctx context.Context, userID string) (int, error) {
	if q.redis == nil || q.limit <= 0 {
		return 0, nil
	}

	count, err := q.redis.Get(ctx, q.key(userID, time.Now())).Int()
	if err == redis.Nil {
		return q.limit, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read swipe quota: %w", err)
	}
	remaining := q.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
