package geodb

import (
	"context"
	"fmt"
	"time"

	"shortctl/internal/lock"
	"shortctl/internal/metrics"
)

// FreshnessWindow is how old an installed database may get before a refresh
// is attempted.
const FreshnessWindow = 35 * 24 * time.Hour

// UpdateLockName identifies the host-wide lock guarding the check-and-update
// sequence. Every process uses the same name, so at most one refresh runs at
// a time on the machine.
const UpdateLockName = "geolocation-db-update"

// Updater keeps the local geolocation database fresh.
type Updater struct {
	locks lock.Factory
	db    DBUpdater
	meta  MetadataReader
	now   func() time.Time
}

// NewUpdater creates an Updater around the given collaborators.
func NewUpdater(locks lock.Factory, db DBUpdater, meta MetadataReader) *Updater {
	return &Updater{
		locks: locks,
		db:    db,
		meta:  meta,
		now:   time.Now,
	}
}

// CheckDBUpdate downloads a fresh copy of the geolocation database when the
// local one is missing or older than FreshnessWindow. The whole sequence runs
// under the host-wide update lock: concurrent callers block until the holder
// finishes, and the lock is released on every exit path. Both hooks may be
// nil.
func (u *Updater) CheckDBUpdate(ctx context.Context, onBefore BeforeDownloadFunc, onProgress ProgressFunc) error {
	lk := u.locks.NewLock(UpdateLockName)
	if err := lk.Acquire(); err != nil {
		return fmt.Errorf("failed to acquire %q lock: %w", UpdateLockName, err)
	}
	defer lk.Release()

	return u.checkAndDownload(ctx, onBefore, onProgress)
}

func (u *Updater) checkAndDownload(ctx context.Context, onBefore BeforeDownloadFunc, onProgress ProgressFunc) error {
	olderDBExists := u.db.DatabaseFileExists()
	if olderDBExists {
		stale, err := u.isStale()
		if err != nil {
			return err
		}
		if !stale {
			return nil
		}
	}

	if onBefore != nil {
		onBefore(olderDBExists)
	}

	metrics.GeoDBDownloadAttempts.Inc()
	if err := u.db.DownloadFreshCopy(ctx, onProgress); err != nil {
		metrics.GeoDBDownloadFailures.Inc()
		return &DownloadError{OlderDBExists: olderDBExists, Err: err}
	}

	return nil
}

// isStale reads the installed database's build timestamp and compares it
// against the freshness window.
func (u *Updater) isStale() (bool, error) {
	raw, err := u.meta.BuildEpoch()
	if err != nil {
		return false, err
	}

	epoch, err := NormalizeBuildEpoch(raw)
	if err != nil {
		return false, err
	}

	buildTime := time.Unix(epoch, 0)
	return u.now().After(buildTime.Add(FreshnessWindow)), nil
}
