package subsets

import (
	"github.com/JonMunkholm/exopop/internal/core"
)

func init() {
	core.Register(core.SubsetDefinition{
		Info: core.SubsetInfo{
			Key:   "goodmass",
			Group: core.GroupMass,
			Label: "GoodMass",
			Color: "black",
			Ink:   true,
		},
		Include: core.HasGoodMass,
	})

	core.Register(core.SubsetDefinition{
		Info: core.SubsetInfo{
			Key:    "badmass",
			Group:  core.GroupMass,
			Label:  "BadMass",
			Color:  "blue",
			ZOrder: -100,
			Ink:    true,
		},
		Include: core.Not(core.HasGoodMass),
	})
}
