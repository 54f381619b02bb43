package geodb

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// downloadURLFormat is the free db-ip city snapshot, published monthly.
const downloadURLFormat = "https://download.db-ip.com/free/dbip-city-lite-%s.mmdb.gz"

var errSnapshotNotFound = errors.New("database snapshot not found")

// FileSystemDBUpdater maintains the geolocation database as a file on disk,
// downloading fresh copies over HTTP. With no explicit download URL it
// fetches the current monthly db-ip snapshot, falling back to the previous
// month when the current one is not published yet.
type FileSystemDBUpdater struct {
	path   string
	url    string
	client *http.Client
	logger zerolog.Logger
	now    func() time.Time
}

// NewFileSystemDBUpdater creates an updater installing the database at path.
// url may be empty to use the monthly db-ip snapshot; client may be nil to
// use http.DefaultClient.
func NewFileSystemDBUpdater(path, url string, client *http.Client, logger zerolog.Logger) *FileSystemDBUpdater {
	if client == nil {
		client = http.DefaultClient
	}
	return &FileSystemDBUpdater{
		path:   path,
		url:    url,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// DatabaseFileExists reports whether a local database file is installed
func (d *FileSystemDBUpdater) DatabaseFileExists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// DownloadFreshCopy downloads and installs a fresh database, reporting
// progress through the optional hook
func (d *FileSystemDBUpdater) DownloadFreshCopy(ctx context.Context, onProgress ProgressFunc) error {
	var lastErr error
	for _, url := range d.candidateURLs() {
		err := d.downloadFrom(ctx, url, onProgress)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errSnapshotNotFound) {
			return err
		}
		d.logger.Warn().Str("url", url).Msg("snapshot not published, trying previous month")
		lastErr = err
	}
	return lastErr
}

// candidateURLs returns the download URLs to try, in order.
func (d *FileSystemDBUpdater) candidateURLs() []string {
	if d.url != "" {
		return []string{d.url}
	}

	ref := d.now()
	thisMonth := ref.Format("2006-01")
	// Stepping back by the day of the month lands on the last day of the
	// previous month regardless of month lengths.
	lastMonth := ref.AddDate(0, 0, -ref.Day()).Format("2006-01")
	return []string{
		fmt.Sprintf(downloadURLFormat, thisMonth),
		fmt.Sprintf(downloadURLFormat, lastMonth),
	}
}

func (d *FileSystemDBUpdater) downloadFrom(ctx context.Context, url string, onProgress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", errSnapshotNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s downloading %s", resp.Status, url)
	}

	var body io.Reader = resp.Body
	if onProgress != nil {
		body = &progressReader{r: resp.Body, total: resp.ContentLength, report: onProgress}
	}

	src := body
	if strings.HasSuffix(url, ".gz") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return fmt.Errorf("failed to decompress %s: %w", url, err)
		}
		defer gz.Close()
		src = gz
	}

	return d.install(src)
}

// install writes the database to a temp file next to the target and renames
// it into place, so readers never observe a partially written database.
func (d *FileSystemDBUpdater) install(src io.Reader) error {
	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".geodb-download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush database: %w", err)
	}

	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("failed to install database: %w", err)
	}
	return nil
}

// progressReader reports bytes read against the expected total.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.read += int64(n)
		p.report(p.total, p.read)
	}
	return n, err
}

// Ensure FileSystemDBUpdater implements the interface
var _ DBUpdater = (*FileSystemDBUpdater)(nil)
