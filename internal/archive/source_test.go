package archive

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JonMunkholm/exopop/internal/config"
	"github.com/JonMunkholm/exopop/internal/core"
)

const snapshot = "pl_hostname|pl_letter|pl_tranflag\nKepler-10|b|1\nHD 209458|b|1\n"

func init() {
	retryDelay = time.Millisecond
}

func newTestSource(t *testing.T, url string) *Source {
	t.Helper()
	return &Source{
		URL:      url,
		Path:     filepath.Join(t.TempDir(), "archive", "snapshot.psv"),
		Timeout:  time.Second,
		Attempts: 3,
		Client:   http.DefaultClient,
	}
}

func TestLoad_UsesCacheWithoutNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(snapshot))
	}))
	defer srv.Close()

	src := newTestSource(t, srv.URL)
	if err := os.MkdirAll(filepath.Dir(src.Path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src.Path, []byte("pl_hostname|pl_letter\nWASP-12|b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
	if hits.Load() != 0 {
		t.Errorf("server hits = %d, want 0", hits.Load())
	}
}

func TestLoad_DownloadsOnMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(snapshot))
	}))
	defer srv.Close()

	src := newTestSource(t, srv.URL)
	table, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
	if got := table.Cell(1, "pl_hostname"); got != "HD 209458" {
		t.Errorf("Cell(1, pl_hostname) = %q, want %q", got, "HD 209458")
	}

	data, err := os.ReadFile(src.Path)
	if err != nil {
		t.Fatalf("cache not written: %v", err)
	}
	if string(data) != snapshot {
		t.Errorf("cached snapshot = %q, want %q", data, snapshot)
	}
}

func TestLoad_RetriesTransientFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(snapshot))
	}))
	defer srv.Close()

	src := newTestSource(t, srv.URL)
	if _, err := src.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if hits.Load() != 3 {
		t.Errorf("server hits = %d, want 3", hits.Load())
	}
}

func TestLoad_SourceUnavailable(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := newTestSource(t, srv.URL)
	_, err := src.Load(context.Background())
	if !errors.Is(err, core.ErrSourceUnavailable) {
		t.Fatalf("Load() error = %v, want ErrSourceUnavailable", err)
	}
	if hits.Load() != 3 {
		t.Errorf("server hits = %d, want 3", hits.Load())
	}
	if _, statErr := os.Stat(src.Path); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("failed download left a cache file: %v", statErr)
	}
}

func TestLoad_EmptyDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	src := newTestSource(t, srv.URL)
	_, err := src.Load(context.Background())
	if !errors.Is(err, core.ErrSourceUnavailable) {
		t.Fatalf("Load() error = %v, want ErrSourceUnavailable", err)
	}
	if !errors.Is(err, core.ErrEmptyTable) {
		t.Errorf("Load() error = %v, want wrapped ErrEmptyTable", err)
	}
}

func TestFetch_NoURL(t *testing.T) {
	src := newTestSource(t, "")
	if err := src.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch() expected error without URL")
	}
}

func TestNew(t *testing.T) {
	cfg := config.ArchiveConfig{
		URL:           "http://example.invalid/archive",
		CachePath:     "data/archive.psv",
		FetchTimeout:  time.Minute,
		FetchAttempts: 2,
	}
	src := New(cfg)
	if src.URL != cfg.URL || src.Path != cfg.CachePath || src.Timeout != time.Minute || src.Attempts != 2 {
		t.Errorf("New() = %+v, want fields from %+v", src, cfg)
	}
	if src.String() != cfg.CachePath {
		t.Errorf("String() = %q, want %q", src.String(), cfg.CachePath)
	}
}
