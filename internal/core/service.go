package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/JonMunkholm/exopop/internal/logging"
	"github.com/JonMunkholm/exopop/internal/metrics"
)

// StandardKey is the cache key of the master table.
const StandardKey = "standard"

// ErrCacheMiss means no cached table exists under a key.
var ErrCacheMiss = errors.New("cache miss")

// TableCache stores standard tables by key.
// Load returns an error wrapping ErrCacheMiss when nothing is stored.
type TableCache interface {
	Load(ctx context.Context, key string) (*MasterTable, error)
	Save(ctx context.Context, key string, t *MasterTable) error
}

// Service provides the catalog operations shared by the CLI and HTTP
// frontends. The master table is built once and shared read-only; every
// subset is an independent copy.
type Service struct {
	source RawSource
	cache  TableCache // nil disables caching
	params Params

	mu      sync.Mutex
	current *MasterTable
	reports []FilterReport
}

// NewService creates a new Service instance. cache may be nil.
func NewService(source RawSource, cache TableCache, params Params) *Service {
	return &Service{
		source: source,
		cache:  cache,
		params: params,
	}
}

// Params returns the selection parameters.
func (s *Service) Params() Params {
	return s.params
}

// sourceName describes the raw source for logs and table metadata.
func (s *Service) sourceName() string {
	if named, ok := s.source.(fmt.Stringer); ok {
		return named.String()
	}
	return "archive"
}

// Population returns the master table. The first call loads the cached
// standard table if there is one, otherwise it builds from the raw source
// and saves the result. refresh forces a rebuild from the raw source.
func (s *Service) Population(ctx context.Context, refresh bool) (*MasterTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && !refresh {
		return s.current, nil
	}

	logger := logging.FromContext(ctx)

	if !refresh {
		if t, ok := s.loadCached(ctx, StandardKey); ok {
			logger.Info("loaded standard table from cache", "snapshot", t.ID, "rows", t.Len())
			s.current = t
			s.reports = nil
			metrics.MasterRows.Set(float64(t.Len()))
			return t, nil
		}
	}

	raw, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	result, err := Build(ctx, raw, s.sourceName())
	if err != nil {
		return nil, err
	}

	s.saveCached(ctx, StandardKey, result.Table)
	s.current = result.Table
	s.reports = result.Reports
	return result.Table, nil
}

// Reports returns the filter reports of the last build. Empty when the
// master table came from the cache.
func (s *Service) Reports() []FilterReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FilterReport, len(s.reports))
	copy(out, s.reports)
	return out
}

// ListSubsets returns information about all registered subsets.
func (s *Service) ListSubsets() []SubsetInfo {
	defs := All()
	infos := make([]SubsetInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// ListSubsetsByGroup returns subsets organized by group.
func (s *Service) ListSubsetsByGroup() map[string][]SubsetInfo {
	result := make(map[string][]SubsetInfo)
	for _, group := range Groups() {
		for _, def := range ByGroup(group) {
			result[group] = append(result[group], def.Info)
		}
	}
	return result
}

// Subset returns a registered subset of the master table. A cached copy is
// used when it belongs to the current snapshot; otherwise the subset is
// computed and saved.
func (s *Service) Subset(ctx context.Context, key string, refresh bool) (*Subset, error) {
	def, ok := Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubset, key)
	}

	master, err := s.Population(ctx, refresh)
	if err != nil {
		return nil, err
	}

	cacheKey := s.subsetCacheKey(key)
	if !refresh {
		if t, ok := s.loadCached(ctx, cacheKey); ok && t.ID == master.ID {
			metrics.SubsetSelections.WithLabelValues(key, "cache").Inc()
			metrics.SubsetRows.WithLabelValues(key).Set(float64(t.Len()))
			return &Subset{
				Info:     def.Info,
				Table:    t,
				Retained: t.Len(),
				Removed:  master.Len() - t.Len(),
			}, nil
		}
	}

	sub, err := Select(ctx, master, def, s.params)
	if err != nil {
		return nil, err
	}
	s.saveCached(ctx, cacheKey, sub.Table)
	return sub, nil
}

// subsetCacheKey returns the cache key of a subset under the service's
// parameters.
func (s *Service) subsetCacheKey(key string) string {
	return key + "-" + s.params.Fingerprint()
}

// Subsets returns the named subsets in order, or every registered subset
// when keys is empty. The first failure aborts.
//
// With no keys, subsets that need a discoverer column are skipped on tables
// that lack one. Named keys are never skipped.
func (s *Service) Subsets(ctx context.Context, keys []string, refresh bool) ([]*Subset, error) {
	// Rebuild the master table at most once.
	master, err := s.Population(ctx, refresh)
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		hasDiscoverer := master.HasColumn(ColDiscoverer)
		for _, def := range All() {
			if def.Info.RequiresDiscoverer && !hasDiscoverer {
				logging.FromContext(ctx).Warn("skipping subset, table has no discoverer column",
					"subset", def.Info.Key)
				continue
			}
			keys = append(keys, def.Info.Key)
		}
	}

	out := make([]*Subset, 0, len(keys))
	for _, key := range keys {
		sub, err := s.Subset(ctx, key, false)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

// Highlight returns the master-table rows whose name matches needle.
func (s *Service) Highlight(ctx context.Context, needle string) (*MasterTable, error) {
	master, err := s.Population(ctx, false)
	if err != nil {
		return nil, err
	}
	return Highlight(master, needle)
}

// Stats summarizes a numeric column of a subset, or of the master table
// when key is StandardKey.
func (s *Service) Stats(ctx context.Context, key, column string) (ColumnStats, error) {
	if key == StandardKey {
		master, err := s.Population(ctx, false)
		if err != nil {
			return ColumnStats{}, err
		}
		return Stats(master, column)
	}

	sub, err := s.Subset(ctx, key, false)
	if err != nil {
		return ColumnStats{}, err
	}
	return Stats(sub.Table, column)
}

// loadCached returns a cached table. Misses and read failures both report
// false; failures are logged.
func (s *Service) loadCached(ctx context.Context, key string) (*MasterTable, bool) {
	if s.cache == nil {
		return nil, false
	}

	t, err := s.cache.Load(ctx, key)
	switch {
	case err == nil:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return t, true
	case errors.Is(err, ErrCacheMiss):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		logging.FromContext(ctx).Warn("cache read failed, recomputing", "key", key, "error", err)
	}
	return nil, false
}

// saveCached stores a table. Failures are logged, not returned.
func (s *Service) saveCached(ctx context.Context, key string, t *MasterTable) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Save(ctx, key, t); err != nil {
		logging.FromContext(ctx).Warn("cache write failed", "key", key, "error", err)
	}
}
