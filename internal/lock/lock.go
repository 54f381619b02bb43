// Package lock provides named, host-wide advisory locks. A lock name
// identifies the same lock across every process on the machine, which is the
// coordination primitive the geolocation database refresh relies on.
package lock

// Lock is a named mutual-exclusion token.
type Lock interface {
	// Acquire blocks until the lock is held. It waits indefinitely rather
	// than failing fast.
	Acquire() error

	// Release releases the lock. It must be called on every exit path once
	// Acquire has succeeded.
	Release() error
}

// Factory creates locks by name.
type Factory interface {
	NewLock(name string) Lock
}
