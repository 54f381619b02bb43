package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shortctl/internal/geodb"
	"shortctl/internal/lock"
)

// DBUpdater is a mock implementation of geodb.DBUpdater
type DBUpdater struct {
	mock.Mock
}

// DatabaseFileExists reports whether a local database file is installed
func (m *DBUpdater) DatabaseFileExists() bool {
	args := m.Called()
	return args.Bool(0)
}

// DownloadFreshCopy downloads and installs a fresh database
func (m *DBUpdater) DownloadFreshCopy(ctx context.Context, onProgress geodb.ProgressFunc) error {
	args := m.Called(ctx, onProgress)
	return args.Error(0)
}

// MetadataReader is a mock implementation of geodb.MetadataReader
type MetadataReader struct {
	mock.Mock
}

// BuildEpoch returns the raw build timestamp embedded in the database
func (m *MetadataReader) BuildEpoch() (any, error) {
	args := m.Called()
	return args.Get(0), args.Error(1)
}

// Lock is a mock implementation of lock.Lock
type Lock struct {
	mock.Mock
}

// Acquire blocks until the lock is held
func (m *Lock) Acquire() error {
	args := m.Called()
	return args.Error(0)
}

// Release releases the lock
func (m *Lock) Release() error {
	args := m.Called()
	return args.Error(0)
}

// LockFactory is a mock implementation of lock.Factory
type LockFactory struct {
	mock.Mock
}

// NewLock creates a lock by name
func (m *LockFactory) NewLock(name string) lock.Lock {
	args := m.Called(name)
	return args.Get(0).(lock.Lock)
}
