package lock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FlockFactory creates file-backed advisory locks, one lock file per name
// under a shared directory. The locks are visible to every process on the
// host.
type FlockFactory struct {
	dir string
}

// NewFlockFactory creates a factory storing its lock files under dir,
// creating the directory if needed.
func NewFlockFactory(dir string) (*FlockFactory, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	return &FlockFactory{dir: dir}, nil
}

// NewLock creates a lock backed by a file named after the lock
func (f *FlockFactory) NewLock(name string) Lock {
	return &fileLock{fl: flock.New(filepath.Join(f.dir, name+".lock"))}
}

type fileLock struct {
	fl *flock.Flock
}

// Acquire blocks until the file lock is held
func (l *fileLock) Acquire() error {
	if err := l.fl.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock %s: %w", l.fl.Path(), err)
	}
	return nil
}

// Release releases the file lock
func (l *fileLock) Release() error {
	return l.fl.Unlock()
}

// Ensure fileLock implements the interface
var _ Lock = (*fileLock)(nil)
var _ Factory = (*FlockFactory)(nil)
