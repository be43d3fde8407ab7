package subsets

import (
	"math"

	"github.com/JonMunkholm/exopop/internal/core"
)

// Effective temperature band edges in K. Bands are half-open, [lo, hi),
// except F which also keeps teffA.
const (
	teffEarlyM = 3400.0
	teffK      = 3800.0
	teffG      = 5300.0
	teffF      = 6000.0
	teffA      = 7200.0
)

type band struct {
	key    string
	label  string
	lo, hi float64
	closed bool
}

var bands = []band{
	{key: "late-m", label: "Teff<3400K", lo: math.Inf(-1), hi: teffEarlyM},
	{key: "early-m", label: "3400K<Teff<3800K", lo: teffEarlyM, hi: teffK},
	{key: "m", label: "M", lo: math.Inf(-1), hi: teffK},
	{key: "k", label: "K", lo: teffK, hi: teffG},
	{key: "g", label: "G", lo: teffG, hi: teffF},
	{key: "f", label: "F", lo: teffF, hi: teffA, closed: true},
}

func init() {
	for _, b := range bands {
		include := core.TeffBand(b.lo, b.hi)
		if b.closed {
			include = core.TeffBandClosed(b.lo, b.hi)
		}
		core.Register(core.SubsetDefinition{
			Info: core.SubsetInfo{
				Key:    b.key,
				Group:  core.GroupStellar,
				Label:  b.label,
				Color:  "darkred",
				ZOrder: -100,
			},
			Include: include,
		})
	}
}
