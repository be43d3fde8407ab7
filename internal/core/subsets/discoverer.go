package subsets

import (
	"github.com/JonMunkholm/exopop/internal/core"
)

func init() {
	registerKepler()
	registerTESS()
	registerOthers()
	registerKeplerLegacy()
}

func registerKepler() {
	core.Register(core.SubsetDefinition{
		Info: core.SubsetInfo{
			Key:          "kepler",
			Group:        core.GroupDiscoverer,
			Label:        "Kepler",
			Color:        "royalblue",
			NameFallback: true,
		},
		Include: core.DiscoveredByKepler,
	})

	core.Register(core.SubsetDefinition{
		Info: core.SubsetInfo{
			Key:          "nonkepler",
			Group:        core.GroupDiscoverer,
			Label:        "Non-Kepler",
			Color:        "black",
			NameFallback: true,
		},
		Include: core.Not(core.DiscoveredByKepler),
	})
}

func registerTESS() {
	core.Register(core.SubsetDefinition{
		Info: core.SubsetInfo{
			Key:                "tess",
			Group:              core.GroupDiscoverer,
			Label:              "TESS",
			Color:              "darkorange",
			RequiresDiscoverer: true,
		},
		Include: core.DiscoveredByTESS,
	})
}

// registerOthers registers planets found by neither Kepler/K2 nor TESS.
// Without a discoverer column the TESS rule fails, so this subset does too
// and is skipped when every subset is requested.
func registerOthers() {
	core.Register(core.SubsetDefinition{
		Info: core.SubsetInfo{
			Key:                "others",
			Group:              core.GroupDiscoverer,
			Label:              "Others",
			Color:              "black",
			ZOrder:             10,
			RequiresDiscoverer: true,
		},
		Include: core.Not(core.AnyOf(exactKepler, core.DiscoveredByTESS)),
	})
}

func registerKeplerLegacy() {
	core.Register(core.SubsetDefinition{
		Info: core.SubsetInfo{
			Key:        "kepler-legacy",
			Group:      core.GroupDiscoverer,
			Label:      "Kepler (name match)",
			Color:      "royalblue",
			Deprecated: true,
		},
		Include: core.DiscoveredByKeplerName,
	})

	core.Register(core.SubsetDefinition{
		Info: core.SubsetInfo{
			Key:        "nonkepler-legacy",
			Group:      core.GroupDiscoverer,
			Label:      "Non-Kepler (name match)",
			Color:      "black",
			Deprecated: true,
		},
		Include: core.Not(core.DiscoveredByKeplerName),
	})
}

// exactKepler matches Kepler/K2 by discoverer label with no name fallback.
func exactKepler(t *core.MasterTable, p core.Params) ([]bool, error) {
	return core.DiscoveredBy(t, p.Surveys.Kepler)
}
