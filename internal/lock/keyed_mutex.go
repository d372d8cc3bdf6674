package lock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// KeyedMutex is an in-process Locker. The ttl argument is ignored; a lease
// is held until released.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	ch   chan struct{}
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

// Obtain blocks until key is free or ctx is done
func (k *KeyedMutex) Obtain(ctx context.Context, key string, _ time.Duration) (Lease, error) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyedEntry{ch: make(chan struct{}, 1)}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
		return &keyedLease{owner: k, key: key, entry: entry}, nil
	case <-ctx.Done():
		k.unref(key, entry)
		return nil, fmt.Errorf("%w: %s: %v", ErrNotObtained, key, ctx.Err())
	}
}

// Held reports how many callers currently hold or wait for key
func (k *KeyedMutex) Held(key string) int {
	k.mu.Lock()
	defer k.mu.Unlock()
	if entry, ok := k.locks[key]; ok {
		return entry.refs
	}
	return 0
}

func (k *KeyedMutex) unref(key string, entry *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
}

type keyedLease struct {
	owner *KeyedMutex
	key   string
	entry *keyedEntry
	once  sync.Once
}

// Release frees the key; calling it twice is a no-op
func (l *keyedLease) Release(_ context.Context) error {
	l.once.Do(func() {
		<-l.entry.ch
		l.owner.unref(l.key, l.entry)
	})
	return nil
}
