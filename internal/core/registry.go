package core

import (
	"fmt"
	"sort"
	"sync"
)

// SubsetInfo describes a registered subset. Color, ZOrder and Ink are
// plotting hints carried through untouched.
type SubsetInfo struct {
	Key    string `json:"key"`
	Group  string `json:"group"`
	Label  string `json:"label"`
	Color  string `json:"color,omitempty"`
	ZOrder int    `json:"zorder"`
	Ink    bool   `json:"ink"`

	// Deprecated marks subsets kept only for older snapshots.
	Deprecated bool `json:"deprecated,omitempty"`

	// NameFallback marks subsets that classify by planet name when the
	// table has no discoverer column.
	NameFallback bool `json:"-"`

	// RequiresDiscoverer marks subsets that cannot be computed on a table
	// without a discoverer column.
	RequiresDiscoverer bool `json:"-"`
}

// Subset groups.
const (
	GroupDiscoverer = "discoverer"
	GroupMass       = "mass"
	GroupStellar    = "stellar"
)

// SubsetDefinition pairs subset metadata with its inclusion rule.
type SubsetDefinition struct {
	Info    SubsetInfo
	Include IncludeFunc
}

var (
	registry   = make(map[string]SubsetDefinition)
	registryMu sync.RWMutex
)

// Register adds a subset definition to the registry.
// Panics if a subset with the same key is already registered or the
// definition has no inclusion rule.
func Register(def SubsetDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("subset already registered: %s", def.Info.Key))
	}
	if def.Include == nil {
		panic(fmt.Sprintf("subset %s has no include rule", def.Info.Key))
	}

	if def.Info.Label == "" {
		def.Info.Label = def.Info.Key
	}

	registry[def.Info.Key] = def
}

// Get returns a subset definition by key.
// Returns false if not found.
func Get(key string) (SubsetDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns all registered subset definitions.
// Sorted by group then by key for consistent ordering.
func All() []SubsetDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]SubsetDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Group != result[j].Info.Group {
			return result[i].Info.Group < result[j].Info.Group
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// ByGroup returns all subset definitions for a specific group.
// Sorted by key for consistent ordering.
func ByGroup(group string) []SubsetDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var result []SubsetDefinition
	for _, def := range registry {
		if def.Info.Group == group {
			result = append(result, def)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// Groups returns all unique group names.
// Sorted alphabetically.
func Groups() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool)
	for _, def := range registry {
		seen[def.Info.Group] = true
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}

	sort.Strings(groups)
	return groups
}

// SubsetCount returns the number of registered subsets.
func SubsetCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered subsets.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]SubsetDefinition)
}
