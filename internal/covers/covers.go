// Package covers downloads and resizes cover thumbnails for saved books.
package covers

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

// DefaultMaxWidth is the resize target used when no width is configured.
const DefaultMaxWidth = 400

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Downloader fetches cover images into a local directory, one JPEG per
// book ID.
type Downloader struct {
	dir        string
	maxWidth   int
	update     bool
	httpClient HTTPDoer
}

// Option is a functional option for configuring the Downloader.
type Option func(*Downloader)

// WithMaxWidth caps the stored image width. Wider downloads are resized
// down, narrower ones kept as-is.
func WithMaxWidth(width int) Option {
	return func(d *Downloader) {
		if width > 0 {
			d.maxWidth = width
		}
	}
}

// WithUpdate forces re-downloading covers that already exist on disk.
func WithUpdate(update bool) Option {
	return func(d *Downloader) {
		d.update = update
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(d *Downloader) {
		if c != nil {
			d.httpClient = c
		}
	}
}

// New creates a Downloader that stores covers under dir.
func New(dir string, opts ...Option) *Downloader {
	d := &Downloader{
		dir:        dir,
		maxWidth:   DefaultMaxWidth,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Result describes the outcome of a single cover fetch.
type Result struct {
	// Downloaded is true when a new file was written.
	Downloaded bool
	// Path is the full path of the cover on disk.
	Path string
}

// Fetch downloads the cover at imageURL and stores it as <dir>/<id>.jpg.
// Existing covers are kept unless the downloader was created with
// WithUpdate. An empty imageURL returns a nil result without error, books
// without thumbnails simply have no cover.
func (d *Downloader) Fetch(id, imageURL string) (*Result, error) {
	if imageURL == "" {
		return nil, nil
	}
	if id == "" {
		return nil, fmt.Errorf("cover fetch needs a book ID")
	}

	path := filepath.Join(d.dir, id+".jpg")
	result := &Result{Path: path}

	if _, err := os.Stat(path); err == nil && !d.update {
		slog.Debug("Cover already exists, skipping download", "path", path)
		return result, nil
	}

	req, err := http.NewRequest(http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build cover request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d downloading cover from %s", resp.StatusCode, imageURL)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cover image: %w", err)
	}

	if img.Bounds().Dx() > d.maxWidth {
		img = imaging.Resize(img, d.maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create covers directory: %w", err)
	}

	if err := imaging.Save(img, path, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to save cover: %w", err)
	}

	slog.Info("Downloaded cover", "path", path)
	result.Downloaded = true

	return result, nil
}
