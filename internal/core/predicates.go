package core

import (
	"math"
	"strings"
)

// IncludeFunc computes the inclusion mask of a subset over a table.
// It must be a pure function of the table and params.
type IncludeFunc func(t *MasterTable, p Params) ([]bool, error)

// DiscoveredBy reports which rows have a discoverer equal to one of labels.
// Fails with a *SchemaMismatchError if the table has no discoverer column.
func DiscoveredBy(t *MasterTable, labels []string) ([]bool, error) {
	discoverers, err := t.Strings(ColDiscoverer)
	if err != nil {
		return nil, err
	}
	mask := make([]bool, len(discoverers))
	for i, d := range discoverers {
		for _, label := range labels {
			if d == label {
				mask[i] = true
				break
			}
		}
	}
	return mask, nil
}

// NameContainsAny reports which names contain any of the fragments.
func NameContainsAny(names []string, fragments []string) []bool {
	mask := make([]bool, len(names))
	for i, name := range names {
		for _, f := range fragments {
			if strings.Contains(name, f) {
				mask[i] = true
				break
			}
		}
	}
	return mask
}

// DiscoveredByKepler classifies Kepler/K2 discoveries by discoverer label.
// Tables without a discoverer column fall back to DiscoveredByKeplerName.
func DiscoveredByKepler(t *MasterTable, p Params) ([]bool, error) {
	if !t.HasColumn(ColDiscoverer) {
		return DiscoveredByKeplerName(t, p)
	}
	return DiscoveredBy(t, p.Surveys.Kepler)
}

// DiscoveredByKeplerName classifies Kepler/K2 discoveries by substring match
// of the planet name against the legacy fragment list in p.
//
// Deprecated: use DiscoveredByKepler on archives with a discoverer column.
func DiscoveredByKeplerName(t *MasterTable, p Params) ([]bool, error) {
	return NameContainsAny(t.Names(), p.Surveys.LegacyKeplerFragments), nil
}

// DiscoveredByTESS classifies TESS discoveries by discoverer label.
func DiscoveredByTESS(t *MasterTable, p Params) ([]bool, error) {
	return DiscoveredBy(t, p.Surveys.TESS)
}

// RelativeMassUncertainty returns the mean absolute mass uncertainty
// divided by the planet mass.
func RelativeMassUncertainty(pl Planet) float64 {
	return MassUncertainty(pl) / pl.PlanetMass
}

// MassUncertainty returns the mean of the absolute upper and lower mass
// uncertainties.
func MassUncertainty(pl Planet) float64 {
	return (math.Abs(pl.PlanetMassLower) + math.Abs(pl.PlanetMassUpper)) / 2.0
}

// HasGoodMass reports which rows have a usable mass measurement: the
// uncertainty is finite and positive, and the relative uncertainty is
// finite, positive and strictly below 1/p.MassThreshold.
// Zero or non-finite uncertainties are never good.
func HasGoodMass(t *MasterTable, p Params) ([]bool, error) {
	limit := p.MaxRelativeMassUncertainty()
	mask := make([]bool, t.Len())
	for i, pl := range t.Planets {
		unc := MassUncertainty(pl)
		if !(unc > 0) || !isFinite(unc) {
			continue
		}
		rel := unc / pl.PlanetMass
		mask[i] = isFinite(rel) && rel > 0 && rel < limit
	}
	return mask, nil
}

// TeffBand includes rows with lo <= teff < hi.
// Use math.Inf(-1) for an open lower bound. Rows with non-finite teff belong
// to no band.
func TeffBand(lo, hi float64) IncludeFunc {
	return teffRange(lo, hi, false)
}

// TeffBandClosed includes rows with lo <= teff <= hi.
func TeffBandClosed(lo, hi float64) IncludeFunc {
	return teffRange(lo, hi, true)
}

func teffRange(lo, hi float64, closed bool) IncludeFunc {
	return func(t *MasterTable, _ Params) ([]bool, error) {
		mask := make([]bool, t.Len())
		for i, pl := range t.Planets {
			teff := pl.Teff
			if !isFinite(teff) || teff < lo {
				continue
			}
			mask[i] = teff < hi || (closed && teff == hi)
		}
		return mask, nil
	}
}

// Not returns the complement of an inclusion rule.
func Not(include IncludeFunc) IncludeFunc {
	return func(t *MasterTable, p Params) ([]bool, error) {
		mask, err := include(t, p)
		if err != nil {
			return nil, err
		}
		out := make([]bool, len(mask))
		for i, ok := range mask {
			out[i] = !ok
		}
		return out, nil
	}
}

// AnyOf includes rows matched by at least one rule.
func AnyOf(rules ...IncludeFunc) IncludeFunc {
	return func(t *MasterTable, p Params) ([]bool, error) {
		out := make([]bool, t.Len())
		for _, rule := range rules {
			mask, err := rule(t, p)
			if err != nil {
				return nil, err
			}
			for i, ok := range mask {
				out[i] = out[i] || ok
			}
		}
		return out, nil
	}
}
