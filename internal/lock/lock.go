// Package lock serializes work on a named key, such as one ledger scope.
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotObtained is returned when a lock could not be acquired in time
var ErrNotObtained = errors.New("lock not obtained")

// Lease is a held lock
type Lease interface {
	Release(ctx context.Context) error
}

// Locker hands out exclusive leases per key. Implementations block until the
// key is free, the context ends, or their retry budget runs out.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}
