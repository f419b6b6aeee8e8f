// Package lock provides an in-process keyed mutex used to serialize
// order-scoped critical sections (assignment, status transitions, payment
// initiation). The contract is per-key mutual exclusion; orders are
// independent units, so no cross-key or global locking is ever taken.
package lock

import "sync"

// KeyedMutex serializes goroutines per key. Entries are reference-counted
// and removed once the last holder releases, so the map does not grow with
// the number of orders ever seen.
//
// Example:
//
//	unlock := locker.Lock(orderID.String())
//	defer unlock()
//	// read-validate-write under the lock
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[string]*keyedEntry),
	}
}

// Lock blocks until the caller holds the exclusive lock for key and returns
// the release function. The release function must be called exactly once,
// on every exit path.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &keyedEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			k.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(k.entries, key)
			}
			k.mu.Unlock()
		})
	}
}
