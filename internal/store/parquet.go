package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/exopop/internal/core"
	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
)

// Key-value metadata stored in every table file.
const (
	metaSnapshotID = "exopop.snapshot_id"
	metaSource     = "exopop.source"
	metaLoadedAt   = "exopop.loaded_at"
	metaOptional   = "exopop.optional_columns"
)

// WriteTable writes a table to a parquet file, replacing any existing file
// only once the new one is complete.
func WriteTable(path string, t *core.MasterTable) error {
	hasDiscoverer := t.HasColumn(core.ColDiscoverer)
	rows := make([]planetRow, len(t.Planets))
	for i, p := range t.Planets {
		rows[i] = toRow(p, hasDiscoverer)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("parquet cache: create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("parquet cache: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := parquet.NewGenericWriter[planetRow](tmp,
		parquet.KeyValueMetadata(metaSnapshotID, t.ID.String()),
		parquet.KeyValueMetadata(metaSource, t.Source),
		parquet.KeyValueMetadata(metaLoadedAt, t.LoadedAt.UTC().Format(time.RFC3339Nano)),
		parquet.KeyValueMetadata(metaOptional, strings.Join(t.Optional, ",")),
	)
	if _, err := w.Write(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("parquet cache: write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("parquet cache: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("parquet cache: write %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("parquet cache: %w", err)
	}
	return nil
}

// ReadTable reads a table written by WriteTable.
func ReadTable(path string) (*core.MasterTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("parquet cache: %w", err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parquet cache: open %s: %w", path, err)
	}

	t := &core.MasterTable{}

	if v, ok := pf.Lookup(metaSnapshotID); ok {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("parquet cache: %s: snapshot id: %w", path, err)
		}
		t.ID = id
	}
	t.Source, _ = pf.Lookup(metaSource)
	if v, ok := pf.Lookup(metaLoadedAt); ok && v != "" {
		loadedAt, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("parquet cache: %s: loaded_at: %w", path, err)
		}
		t.LoadedAt = loadedAt
	}
	if v, ok := pf.Lookup(metaOptional); ok && v != "" {
		t.Optional = strings.Split(v, ",")
	}

	rows, err := parquet.Read[planetRow](f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parquet cache: read %s: %w", path, err)
	}

	t.Planets = make([]core.Planet, len(rows))
	for i, r := range rows {
		t.Planets[i] = fromRow(r)
	}
	return t, nil
}

// ParquetCache is a core.TableCache keeping one parquet file per key.
type ParquetCache struct {
	Dir string
}

// NewParquetCache creates a cache rooted at dir.
func NewParquetCache(dir string) *ParquetCache {
	return &ParquetCache{Dir: dir}
}

// Path returns the file that holds key.
func (c *ParquetCache) Path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("parquet cache: invalid key %q", key)
	}
	return filepath.Join(c.Dir, key+".parquet"), nil
}

// Load reads the table stored under key.
func (c *ParquetCache) Load(_ context.Context, key string) (*core.MasterTable, error) {
	path, err := c.Path(key)
	if err != nil {
		return nil, err
	}

	t, err := ReadTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", core.ErrCacheMiss, key)
	}
	return t, err
}

// Save stores t under key.
func (c *ParquetCache) Save(_ context.Context, key string, t *core.MasterTable) error {
	path, err := c.Path(key)
	if err != nil {
		return err
	}
	return WriteTable(path, t)
}
