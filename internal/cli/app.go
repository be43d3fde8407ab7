package cli

import (
	"encoding/json"
	"io"

	"github.com/JonMunkholm/exopop/internal/archive"
	"github.com/JonMunkholm/exopop/internal/config"
	"github.com/JonMunkholm/exopop/internal/core"
	"github.com/JonMunkholm/exopop/internal/store"
)

// app holds what the root command resolved for its subcommands.
type app struct {
	cfg    *config.Config
	params core.Params

	service *core.Service
}

// Service returns the catalog service, creating it on first use.
func (a *app) Service() *core.Service {
	if a.service != nil {
		return a.service
	}

	var cache core.TableCache
	if a.cfg.Catalog.CacheDir != "" {
		cache = store.NewParquetCache(a.cfg.Catalog.CacheDir)
	}

	a.service = core.NewService(archive.New(a.cfg.Archive), cache, a.params)
	return a.service
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
