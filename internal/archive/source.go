// Package archive obtains raw exoplanet archive snapshots.
//
// A Source reads the cached snapshot if one exists; otherwise it downloads
// the archive query once (with bounded retries), saves it to the cache path
// and reads it again.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/exopop/internal/config"
	"github.com/JonMunkholm/exopop/internal/core"
	"github.com/JonMunkholm/exopop/internal/logging"
	"github.com/JonMunkholm/exopop/internal/metrics"
)

// retryDelay is the pause before the second attempt; it doubles after each failure.
var retryDelay = 500 * time.Millisecond

// Source is a cache-first archive snapshot. It implements core.RawSource.
type Source struct {
	URL      string
	Path     string
	Timeout  time.Duration // per attempt
	Attempts int

	Client *http.Client
}

// New creates a Source from configuration.
func New(cfg config.ArchiveConfig) *Source {
	return &Source{
		URL:      cfg.URL,
		Path:     cfg.CachePath,
		Timeout:  cfg.FetchTimeout,
		Attempts: cfg.FetchAttempts,
		Client:   http.DefaultClient,
	}
}

// String returns the cache path, used as the table's source.
func (s *Source) String() string {
	return s.Path
}

// Load returns the cached snapshot, downloading it first if the cache is
// missing or unreadable. Fails with core.ErrSourceUnavailable when neither
// yields a table.
func (s *Source) Load(ctx context.Context) (*core.RawTable, error) {
	logger := logging.WithFields(ctx, "path", s.Path)

	t, err := s.readCache()
	if err == nil {
		logger.Info("loaded cached archive snapshot", "rows", t.Len())
		return t, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("no cached archive snapshot, downloading")
	} else {
		logger.Warn("cached archive snapshot unreadable, downloading", "error", err)
	}

	if err := s.Fetch(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrSourceUnavailable, err)
	}

	t, err = s.readCache()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrSourceUnavailable, err)
	}
	logger.Info("loaded downloaded archive snapshot", "rows", t.Len())
	return t, nil
}

// readCache parses the cached snapshot.
func (s *Source) readCache() (*core.RawTable, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := core.ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return t, nil
}

// Fetch downloads the latest snapshot into the cache path, replacing any
// existing file only after a complete download.
func (s *Source) Fetch(ctx context.Context) error {
	if s.URL == "" {
		return errors.New("archive URL is not configured")
	}

	attempts := s.Attempts
	if attempts < 1 {
		attempts = 1
	}

	logger := logging.WithFields(ctx, "url", s.URL)
	delay := retryDelay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		start := time.Now()
		err := s.fetchOnce(ctx)
		metrics.ArchiveFetchDuration.Observe(time.Since(start).Seconds())

		if err == nil {
			metrics.ArchiveFetches.WithLabelValues("ok").Inc()
			logger.Info("archive snapshot downloaded", "path", s.Path, "attempt", attempt)
			return nil
		}

		metrics.ArchiveFetches.WithLabelValues("error").Inc()
		lastErr = err
		logger.Warn("archive download failed", "attempt", attempt, "of", attempts, "error", err)

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return fmt.Errorf("download failed after %d attempts: %w", attempts, lastErr)
}

// fetchOnce performs a single bounded download attempt.
func (s *Source) fetchOnce(ctx context.Context) error {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	return writeAtomic(s.Path, resp.Body)
}

// writeAtomic copies r to a temporary file next to path and renames it
// into place.
func writeAtomic(path string, r io.Reader) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}
