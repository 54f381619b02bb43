package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"shortctl/internal/geodb"
)

// GeoDBRunner drives the geolocation database refresh from the command line
// and decides how each failure kind is presented.
type GeoDBRunner struct {
	updater *geodb.Updater
	out     io.Writer
	logger  zerolog.Logger
}

// NewGeoDBRunner creates a runner writing user-facing output to out.
func NewGeoDBRunner(updater *geodb.Updater, out io.Writer, logger zerolog.Logger) *GeoDBRunner {
	return &GeoDBRunner{
		updater: updater,
		out:     out,
		logger:  logger,
	}
}

// Run checks the database and downloads a fresh copy when needed. A download
// failure that leaves an older copy installed is reported as a warning and
// the command still succeeds; a failure with no copy at all propagates.
func (r *GeoDBRunner) Run(ctx context.Context) error {
	onBefore := func(olderDBExists bool) {
		if olderDBExists {
			fmt.Fprintln(r.out, "Updating stale geolocation database...")
		} else {
			fmt.Fprintln(r.out, "Downloading geolocation database...")
		}
	}

	downloaded := false
	onProgress := func(total, downloadedBytes int64) {
		downloaded = true
		if total > 0 {
			fmt.Fprintf(r.out, "\rDownloading: %d%%", downloadedBytes*100/total)
		} else {
			fmt.Fprintf(r.out, "\rDownloading: %d bytes", downloadedBytes)
		}
	}

	err := r.updater.CheckDBUpdate(ctx, onBefore, onProgress)
	if downloaded {
		fmt.Fprintln(r.out)
	}

	if err == nil {
		fmt.Fprintln(r.out, "Geolocation database is up to date")
		return nil
	}

	var dlErr *geodb.DownloadError
	if errors.As(err, &dlErr) && dlErr.OlderDBExists {
		r.logger.Warn().Err(dlErr.Err).Msg("geolocation database update failed, keeping previous copy")
		fmt.Fprintln(r.out, "Warning: geolocation database update failed, the previous copy remains in use")
		return nil
	}

	return err
}
