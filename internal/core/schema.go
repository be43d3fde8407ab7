package core

import "math"

// Canonical column names.
const (
	ColName                 = "name"
	ColPeriod               = "period"
	ColTransitEpoch         = "transit_epoch"
	ColTransitDuration      = "transit_duration"
	ColTeff                 = "teff"
	ColStellarRadius        = "stellar_radius"
	ColStellarMass          = "stellar_mass"
	ColJ                    = "J"
	ColPlanetRadius         = "planet_radius"
	ColPlanetRadiusUpper    = "planet_radius_upper"
	ColPlanetRadiusLower    = "planet_radius_lower"
	ColAOverR               = "a_over_r"
	ColRVSemiamplitude      = "rv_semiamplitude"
	ColPlanetMass           = "planet_mass"
	ColPlanetMassUpper      = "planet_mass_upper"
	ColPlanetMassLower      = "planet_mass_lower"
	ColRadiusRatio          = "radius_ratio"
	ColRA                   = "ra"
	ColDec                  = "dec"
	ColB                    = "b"
	ColStellarDistance      = "stellar_distance"
	ColStellarDistanceUpper = "stellar_distance_upper"
	ColStellarDistanceLower = "stellar_distance_lower"
	ColDiscoverer           = "discoverer"
)

// Archive column names (NASA Exoplanet Archive, lowercase).
const (
	ArcHostname     = "pl_hostname"
	ArcLetter       = "pl_letter"
	ArcOrbPer       = "pl_orbper"
	ArcTranMid      = "pl_tranmid"
	ArcTranDur      = "pl_trandur"
	ArcTeff         = "st_teff"
	ArcStRad        = "st_rad"
	ArcStMass       = "st_mass"
	ArcJ            = "st_j"
	ArcRA           = "ra"
	ArcDec          = "dec"
	ArcRade         = "pl_rade"
	ArcRadeErr1     = "pl_radeerr1"
	ArcRadeErr2     = "pl_radeerr2"
	ArcRatDor       = "pl_ratdor"
	ArcRVAmp        = "pl_rvamp"
	ArcMasse        = "pl_masse"
	ArcMasseErr1    = "pl_masseerr1"
	ArcMasseErr2    = "pl_masseerr2"
	ArcRatRor       = "pl_ratror"
	ArcImpPar       = "pl_imppar"
	ArcDist         = "st_dist"
	ArcDistErr1     = "st_disterr1"
	ArcDistErr2     = "st_disterr2"
	ArcTranFlag     = "pl_tranflag"
	ArcDiscFacility = "disc_facility"
	ArcPlFacility   = "pl_facility"
)

// ColumnSpec maps one archive column onto the canonical schema.
type ColumnSpec struct {
	Archive   string   // Archive column name
	Canonical string   // Canonical column name ("" if consumed by a filter only)
	Required  bool     // Column must exist in the archive header
	Aliases   []string // Alternate archive names, tried in order
}

// ArchiveColumns lists every archive column the pipeline reads.
var ArchiveColumns = []ColumnSpec{
	{Archive: ArcHostname, Canonical: ColName, Required: true},
	{Archive: ArcLetter, Canonical: ColName, Required: true},
	{Archive: ArcOrbPer, Canonical: ColPeriod, Required: true},
	{Archive: ArcTranMid, Canonical: ColTransitEpoch, Required: true},
	{Archive: ArcTranDur, Canonical: ColTransitDuration, Required: true},
	{Archive: ArcTeff, Canonical: ColTeff, Required: true},
	{Archive: ArcStRad, Canonical: ColStellarRadius, Required: true},
	{Archive: ArcStMass, Canonical: ColStellarMass, Required: true},
	{Archive: ArcJ, Canonical: ColJ, Required: true},
	{Archive: ArcRA, Canonical: ColRA, Required: true},
	{Archive: ArcDec, Canonical: ColDec, Required: true},
	{Archive: ArcRade, Canonical: ColPlanetRadius, Required: true},
	{Archive: ArcRadeErr1, Canonical: ColPlanetRadiusUpper, Required: true},
	{Archive: ArcRadeErr2, Canonical: ColPlanetRadiusLower, Required: true},
	{Archive: ArcRatDor, Canonical: ColAOverR, Required: true},
	{Archive: ArcRVAmp, Canonical: ColRVSemiamplitude, Required: true},
	{Archive: ArcMasse, Canonical: ColPlanetMass, Required: true},
	{Archive: ArcMasseErr1, Canonical: ColPlanetMassUpper, Required: true},
	{Archive: ArcMasseErr2, Canonical: ColPlanetMassLower, Required: true},
	{Archive: ArcRatRor, Canonical: ColRadiusRatio, Required: true},
	{Archive: ArcImpPar, Canonical: ColB, Required: true},
	{Archive: ArcDist, Canonical: ColStellarDistance, Required: true},
	{Archive: ArcDistErr1, Canonical: ColStellarDistanceUpper, Required: true},
	{Archive: ArcDistErr2, Canonical: ColStellarDistanceLower, Required: true},
	{Archive: ArcTranFlag, Required: true},
	{Archive: ArcDiscFacility, Canonical: ColDiscoverer, Aliases: []string{ArcPlFacility}},
}

// RequiredArchiveColumns returns the archive columns that must be present.
func RequiredArchiveColumns() []string {
	var cols []string
	for _, spec := range ArchiveColumns {
		if spec.Required {
			cols = append(cols, spec.Archive)
		}
	}
	return cols
}

// resolve returns the first archive name of the spec present in the table.
func (spec ColumnSpec) resolve(t *RawTable) (string, bool) {
	if t.Has(spec.Archive) {
		return spec.Archive, true
	}
	for _, alias := range spec.Aliases {
		if t.Has(alias) {
			return alias, true
		}
	}
	return "", false
}

// floatColumn gives read access to one numeric canonical column.
type floatColumn struct {
	name string
	get  func(p *Planet) float64
}

// floatColumns lists the numeric canonical columns in schema order.
var floatColumns = []floatColumn{
	{ColPeriod, func(p *Planet) float64 { return p.Period }},
	{ColTransitEpoch, func(p *Planet) float64 { return p.TransitEpoch }},
	{ColTransitDuration, func(p *Planet) float64 { return p.TransitDuration }},
	{ColTeff, func(p *Planet) float64 { return p.Teff }},
	{ColStellarRadius, func(p *Planet) float64 { return p.StellarRadius }},
	{ColStellarMass, func(p *Planet) float64 { return p.StellarMass }},
	{ColJ, func(p *Planet) float64 { return p.J }},
	{ColPlanetRadius, func(p *Planet) float64 { return p.PlanetRadius }},
	{ColPlanetRadiusUpper, func(p *Planet) float64 { return p.PlanetRadiusUpper }},
	{ColPlanetRadiusLower, func(p *Planet) float64 { return p.PlanetRadiusLower }},
	{ColAOverR, func(p *Planet) float64 { return p.AOverR }},
	{ColRVSemiamplitude, func(p *Planet) float64 { return p.RVSemiamplitude }},
	{ColPlanetMass, func(p *Planet) float64 { return p.PlanetMass }},
	{ColPlanetMassUpper, func(p *Planet) float64 { return p.PlanetMassUpper }},
	{ColPlanetMassLower, func(p *Planet) float64 { return p.PlanetMassLower }},
	{ColRadiusRatio, func(p *Planet) float64 { return p.RadiusRatio }},
	{ColRA, func(p *Planet) float64 { return FromPgFloat8(p.RA) }},
	{ColDec, func(p *Planet) float64 { return FromPgFloat8(p.Dec) }},
	{ColB, func(p *Planet) float64 { return p.B }},
	{ColStellarDistance, func(p *Planet) float64 { return p.StellarDistance }},
	{ColStellarDistanceUpper, func(p *Planet) float64 { return p.StellarDistanceUpper }},
	{ColStellarDistanceLower, func(p *Planet) float64 { return p.StellarDistanceLower }},
}

var floatColumnIndex = func() map[string]floatColumn {
	idx := make(map[string]floatColumn, len(floatColumns))
	for _, c := range floatColumns {
		idx[c.name] = c
	}
	return idx
}()

// NumericColumns returns the numeric canonical column names in schema order.
func NumericColumns() []string {
	names := make([]string, len(floatColumns))
	for i, c := range floatColumns {
		names[i] = c.name
	}
	return names
}

// isFinite reports whether f is neither NaN nor infinite.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
