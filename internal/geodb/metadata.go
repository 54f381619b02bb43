package geodb

import (
	"fmt"
	"strconv"

	"github.com/oschwald/maxminddb-golang"
)

// NormalizeBuildEpoch converts a raw build timestamp into a Unix epoch.
// Integer values pass through; strings are accepted only when the parsed
// integer round-trips to the exact same text, so malformed or truncated
// values fail instead of being silently misread.
func NormalizeBuildEpoch(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case string:
		epoch, err := strconv.ParseInt(v, 10, 64)
		if err != nil || strconv.FormatInt(epoch, 10) != v {
			return 0, &InvalidBuildEpochError{Value: raw}
		}
		return epoch, nil
	default:
		return 0, &InvalidBuildEpochError{Value: raw}
	}
}

// MMDBMetadataReader reads metadata from an installed MMDB file.
type MMDBMetadataReader struct {
	path string
}

// NewMMDBMetadataReader creates a reader for the database at path.
func NewMMDBMetadataReader(path string) *MMDBMetadataReader {
	return &MMDBMetadataReader{path: path}
}

// BuildEpoch opens the database, reads its embedded build timestamp and
// closes it again.
func (r *MMDBMetadataReader) BuildEpoch() (any, error) {
	db, err := maxminddb.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read geolocation database metadata: %w", err)
	}
	defer db.Close()

	return db.Metadata.BuildEpoch, nil
}

// Ensure MMDBMetadataReader implements the interface
var _ MetadataReader = (*MMDBMetadataReader)(nil)
