package geodb

import "fmt"

// InvalidBuildEpochError signals that the installed database carries a build
// timestamp that is not a valid integer. It keeps the offending raw value.
type InvalidBuildEpochError struct {
	Value any
}

func (e *InvalidBuildEpochError) Error() string {
	return fmt.Sprintf("provided build epoch %q is invalid", fmt.Sprint(e.Value))
}

// DownloadError signals a failed database download. OlderDBExists
// distinguishes a degraded-but-functional outcome (a stale copy remains
// usable) from a total absence of geolocation data.
type DownloadError struct {
	OlderDBExists bool
	Err           error
}

func (e *DownloadError) Error() string {
	if e.OlderDBExists {
		return fmt.Sprintf("geolocation database update failed, an older copy remains installed: %v", e.Err)
	}
	return fmt.Sprintf("geolocation database download failed and no older copy exists: %v", e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
