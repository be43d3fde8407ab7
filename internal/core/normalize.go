package core

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// NormalizeResult carries counters collected while normalizing.
type NormalizeResult struct {
	Table             *MasterTable
	AOverRFilled      int // rows whose a/R came from KeplerAOverR
	PositionsNulled   int // rows whose ra/dec were both 0 and became null
	DiscovererMissing bool
}

// Normalize remaps a filtered archive table into the canonical schema.
//
// Every required archive column must be present; a structurally absent column
// fails with a *SchemaMismatchError rather than producing a null column.
// Per-row missing values are expected and become NaN (or null for ra/dec).
// Rows are sorted by name once all fields are filled.
func Normalize(raw *RawTable) (*NormalizeResult, error) {
	if err := ValidateHeaders(raw, "normalize", RequiredArchiveColumns()); err != nil {
		return nil, err
	}

	discovererCol, hasDiscoverer := discovererSpec().resolve(raw)

	result := &NormalizeResult{DiscovererMissing: !hasDiscoverer}
	planets := make([]Planet, raw.Len())

	for i := range raw.Rows {
		f := func(col string) float64 { return raw.Float(i, col) }

		p := Planet{
			Name: raw.Cell(i, ArcHostname) + raw.Cell(i, ArcLetter),

			Period:          f(ArcOrbPer),
			TransitEpoch:    f(ArcTranMid),
			TransitDuration: f(ArcTranDur),

			Teff:          f(ArcTeff),
			StellarRadius: f(ArcStRad),
			StellarMass:   f(ArcStMass),
			J:             f(ArcJ),

			PlanetRadius:      f(ArcRade),
			PlanetRadiusUpper: f(ArcRadeErr1),
			PlanetRadiusLower: f(ArcRadeErr2),

			AOverR:          f(ArcRatDor),
			RVSemiamplitude: f(ArcRVAmp),

			PlanetMass:      f(ArcMasse),
			PlanetMassUpper: f(ArcMasseErr1),
			PlanetMassLower: f(ArcMasseErr2),

			RadiusRatio: f(ArcRatRor),
			B:           f(ArcImpPar),

			StellarDistance:      f(ArcDist),
			StellarDistanceUpper: f(ArcDistErr1),
			StellarDistanceLower: f(ArcDistErr2),
		}

		if needsAOverRFallback(p.AOverR) {
			p.AOverR = KeplerAOverR(p.Period, p.StellarMass, p.StellarRadius)
			result.AOverRFilled++
		}

		// ra = dec = 0 is the archive's encoding for "not reported".
		ra, dec := f(ArcRA), f(ArcDec)
		if ra == 0 && dec == 0 {
			result.PositionsNulled++
		} else {
			p.RA = ToPgFloat8(ra)
			p.Dec = ToPgFloat8(dec)
		}

		if hasDiscoverer {
			p.Discoverer = raw.Cell(i, discovererCol)
		}

		planets[i] = p
	}

	sort.SliceStable(planets, func(a, b int) bool {
		return planets[a].Name < planets[b].Name
	})

	table := &MasterTable{
		ID:       uuid.New(),
		LoadedAt: time.Now().UTC(),
		Planets:  planets,
	}
	if hasDiscoverer {
		table.Optional = []string{ColDiscoverer}
	}
	result.Table = table

	return result, nil
}

// discovererSpec returns the column spec of the optional discoverer field.
func discovererSpec() ColumnSpec {
	for _, spec := range ArchiveColumns {
		if spec.Canonical == ColDiscoverer {
			return spec
		}
	}
	return ColumnSpec{}
}
