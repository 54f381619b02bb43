package geodb

import "context"

// BeforeDownloadFunc is invoked right before a download starts. The flag
// tells the caller whether an older database already exists, so it can decide
// how to present the refresh.
type BeforeDownloadFunc func(olderDBExists bool)

// ProgressFunc receives download progress. total is the expected size in
// bytes, or a non-positive value when unknown.
type ProgressFunc func(total, downloaded int64)

// DBUpdater manages the local geolocation database file.
type DBUpdater interface {
	// DatabaseFileExists reports whether a local database file is installed.
	DatabaseFileExists() bool

	// DownloadFreshCopy downloads and installs a fresh database, reporting
	// progress through the optional hook.
	DownloadFreshCopy(ctx context.Context, onProgress ProgressFunc) error
}

// MetadataReader exposes metadata of the currently installed database.
type MetadataReader interface {
	// BuildEpoch returns the raw build timestamp embedded in the database.
	// The underlying library may hand it back as an integer or as a numeric
	// string; callers normalize it with NormalizeBuildEpoch.
	BuildEpoch() (any, error)
}
