package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/exopop/internal/logging"
	"github.com/JonMunkholm/exopop/internal/metrics"
)

// Subset is a named row subset of a master table.
// Table is an independent copy; mutating it never affects the source.
type Subset struct {
	Info     SubsetInfo   `json:"info"`
	Table    *MasterTable `json:"table"`
	Retained int          `json:"retained"`
	Removed  int          `json:"removed"`
}

// Select applies a subset definition to a master table.
// All columns and the pre-filter row order are preserved.
func Select(ctx context.Context, t *MasterTable, def SubsetDefinition, p Params) (*Subset, error) {
	logger := logging.WithFields(ctx, "subset", def.Info.Key)

	if def.Info.Deprecated || (def.Info.NameFallback && !t.HasColumn(ColDiscoverer)) {
		logger.Warn("selecting with deprecated name-fragment classifier",
			"fragments_version", p.Surveys.Version,
		)
	}

	mask, err := def.Include(t, p)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", def.Info.Key, err)
	}

	table, err := t.Filter(mask)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", def.Info.Key, err)
	}

	s := &Subset{
		Info:     def.Info,
		Table:    table,
		Retained: table.Len(),
		Removed:  t.Len() - table.Len(),
	}

	logger.Info("subset selected",
		"from", t.Len(),
		"to", s.Retained,
	)
	metrics.SubsetRows.WithLabelValues(def.Info.Key).Set(float64(s.Retained))
	metrics.SubsetSelections.WithLabelValues(def.Info.Key, "computed").Inc()

	return s, nil
}

// SelectByKey looks up a registered subset and applies it.
func SelectByKey(ctx context.Context, t *MasterTable, key string, p Params) (*Subset, error) {
	def, ok := Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubset, key)
	}
	return Select(ctx, t, def, p)
}
