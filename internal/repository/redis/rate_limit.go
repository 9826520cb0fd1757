package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arklim/social-platform-accounts/internal/core/port"
)

// SlidingWindowConfig tunes the attempt store backing a sliding-window
// limiter.
type SlidingWindowConfig struct {
	KeyPrefix string
	TTL       time.Duration
}

// RateLimitRepository keeps per-identifier attempt timestamps in Redis sorted
// sets, scored by nanosecond timestamps so range queries express the window.
type RateLimitRepository struct {
	client *redis.Client
	cfg    SlidingWindowConfig
}

func NewRateLimitRepository(client *redis.Client, cfg SlidingWindowConfig) *RateLimitRepository {
	return &RateLimitRepository{client: client, cfg: cfg}
}

// RecordAttempt appends an attempt at the given instant and refreshes the key
// TTL in one round trip.
func (r *RateLimitRepository) RecordAttempt(ctx context.Context, identifier string, at time.Time) error {
	key := r.key(identifier)

	pipe := r.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(at.UnixNano()), Member: at.UnixNano()})
	if r.cfg.TTL > 0 {
		pipe.Expire(ctx, key, r.cfg.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis record attempt: %w", err)
	}

	return nil
}

// CountAttempts reports how many attempts fall inside the window ending at
// the reference instant.
func (r *RateLimitRepository) CountAttempts(ctx context.Context, identifier string, window time.Duration, reference time.Time) (int, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}

	count, err := r.client.ZCount(ctx, r.key(identifier),
		scoreOf(reference.Add(-window)), scoreOf(reference)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis count attempts: %w", err)
	}

	return int(count), nil
}

// TrimWindow drops attempts that slid out of the window.
func (r *RateLimitRepository) TrimWindow(ctx context.Context, identifier string, window time.Duration, reference time.Time) error {
	if window <= 0 {
		return errors.New("window must be positive")
	}

	err := r.client.ZRemRangeByScore(ctx, r.key(identifier), "-inf", scoreOf(reference.Add(-window))).Err()
	if err != nil {
		return fmt.Errorf("redis trim window: %w", err)
	}

	return nil
}

// OldestAttempt returns the earliest attempt still inside the window, used to
// compute the retry-after hint.
func (r *RateLimitRepository) OldestAttempt(ctx context.Context, identifier string, window time.Duration, reference time.Time) (time.Time, bool, error) {
	if window <= 0 {
		return time.Time{}, false, errors.New("window must be positive")
	}

	values, err := r.client.ZRangeByScore(ctx, r.key(identifier), &redis.ZRangeBy{
		Min:   scoreOf(reference.Add(-window)),
		Max:   scoreOf(reference),
		Count: 1,
	}).Result()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis oldest attempt: %w", err)
	}

	if len(values) == 0 {
		return time.Time{}, false, nil
	}

	ns, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse attempt timestamp: %w", err)
	}

	return time.Unix(0, ns), true, nil
}

func (r *RateLimitRepository) key(identifier string) string {
	if r.cfg.KeyPrefix == "" {
		return identifier
	}
	return r.cfg.KeyPrefix + ":" + identifier
}

func scoreOf(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixNano()), 'f', -1, 64)
}

var _ port.RateLimitStore = (*RateLimitRepository)(nil)
