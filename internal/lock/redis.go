package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultRetryBackoff is the pause between attempts on a busy key
	DefaultRetryBackoff = 50 * time.Millisecond
	// DefaultRetryLimit bounds how long Obtain waits on a busy key
	DefaultRetryLimit = 100
	keyPrefix         = "condo:lock:"
)

// RedisLocker is a Locker shared by every API instance pointing at the same Redis
type RedisLocker struct {
	client  *redislock.Client
	backoff time.Duration
	retries int
}

// NewRedisLocker wraps a go-redis client
func NewRedisLocker(rdb redis.UniversalClient) *RedisLocker {
	return &RedisLocker{
		client:  redislock.New(rdb),
		backoff: DefaultRetryBackoff,
		retries: DefaultRetryLimit,
	}
}

// NewRedisLockerFromURL parses a redis:// URL and verifies the connection
func NewRedisLockerFromURL(ctx context.Context, redisURL string) (*RedisLocker, *redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewRedisLocker(rdb), rdb, nil
}

// Obtain retries with linear backoff until the key is free
func (r *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	l, err := r.client.Obtain(ctx, keyPrefix+key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(r.backoff), r.retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
		log.Warn().Str("lock_key", key).Msg("Could not obtain lock")
		return nil, fmt.Errorf("%w: %s", ErrNotObtained, key)
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return &redisLease{lock: l}, nil
}

type redisLease struct {
	lock *redislock.Lock
}

func (l *redisLease) Release(ctx context.Context) error {
	err := l.lock.Release(ctx)
	if errors.Is(err, redislock.ErrLockNotHeld) {
		return nil
	}
	return err
}
