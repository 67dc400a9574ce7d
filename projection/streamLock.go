package projection

import (
	"context"
	"time"

	"github.com/bsm/redislock"
)

const (
	estateStreamLockPrefix = "projection:estate:"
	estateStreamLockTTL    = 30 * time.Second
)

// WithEstateStreamLock serialises projection work per estate. Events for
// different estates may project concurrently, but two workers must never
// apply events for the same estate at the same time. With a nil locker
// (single-worker deployments, tests) fn runs directly.
func WithEstateStreamLock(ctx context.Context, locker *redislock.Client, estateId string, fn func(context.Context) error) error {
	if locker == nil {
		return fn(ctx)
	}

	lock, err := locker.Obtain(ctx, estateStreamLockPrefix+estateId, estateStreamLockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(250*time.Millisecond), 40),
	})
	if err != nil {
		return err
	}
	defer lock.Release(context.WithoutCancel(ctx))

	return fn(ctx)
}
