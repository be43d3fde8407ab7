// Package store persists standard tables: parquet files for the local
// standard-table cache and exports, and PostgreSQL for published snapshots.
package store

import (
	"math"

	"github.com/JonMunkholm/exopop/internal/core"
	"github.com/jackc/pgx/v5/pgtype"
)

// planetRow is the parquet form of core.Planet. Missing values are nulls.
type planetRow struct {
	Name string `parquet:"name"`

	Period          *float64 `parquet:"period,optional"`
	TransitEpoch    *float64 `parquet:"transit_epoch,optional"`
	TransitDuration *float64 `parquet:"transit_duration,optional"`

	Teff          *float64 `parquet:"teff,optional"`
	StellarRadius *float64 `parquet:"stellar_radius,optional"`
	StellarMass   *float64 `parquet:"stellar_mass,optional"`
	J             *float64 `parquet:"J,optional"`

	PlanetRadius      *float64 `parquet:"planet_radius,optional"`
	PlanetRadiusUpper *float64 `parquet:"planet_radius_upper,optional"`
	PlanetRadiusLower *float64 `parquet:"planet_radius_lower,optional"`

	AOverR          *float64 `parquet:"a_over_r,optional"`
	RVSemiamplitude *float64 `parquet:"rv_semiamplitude,optional"`

	PlanetMass      *float64 `parquet:"planet_mass,optional"`
	PlanetMassUpper *float64 `parquet:"planet_mass_upper,optional"`
	PlanetMassLower *float64 `parquet:"planet_mass_lower,optional"`

	RadiusRatio *float64 `parquet:"radius_ratio,optional"`

	RA  *float64 `parquet:"ra,optional"`
	Dec *float64 `parquet:"dec,optional"`

	B *float64 `parquet:"b,optional"`

	StellarDistance      *float64 `parquet:"stellar_distance,optional"`
	StellarDistanceUpper *float64 `parquet:"stellar_distance_upper,optional"`
	StellarDistanceLower *float64 `parquet:"stellar_distance_lower,optional"`

	Discoverer *string `parquet:"discoverer,optional"`
}

func toRow(p core.Planet, hasDiscoverer bool) planetRow {
	row := planetRow{
		Name:                 p.Name,
		Period:               core.FloatPtr(p.Period),
		TransitEpoch:         core.FloatPtr(p.TransitEpoch),
		TransitDuration:      core.FloatPtr(p.TransitDuration),
		Teff:                 core.FloatPtr(p.Teff),
		StellarRadius:        core.FloatPtr(p.StellarRadius),
		StellarMass:          core.FloatPtr(p.StellarMass),
		J:                    core.FloatPtr(p.J),
		PlanetRadius:         core.FloatPtr(p.PlanetRadius),
		PlanetRadiusUpper:    core.FloatPtr(p.PlanetRadiusUpper),
		PlanetRadiusLower:    core.FloatPtr(p.PlanetRadiusLower),
		AOverR:               core.FloatPtr(p.AOverR),
		RVSemiamplitude:      core.FloatPtr(p.RVSemiamplitude),
		PlanetMass:           core.FloatPtr(p.PlanetMass),
		PlanetMassUpper:      core.FloatPtr(p.PlanetMassUpper),
		PlanetMassLower:      core.FloatPtr(p.PlanetMassLower),
		RadiusRatio:          core.FloatPtr(p.RadiusRatio),
		RA:                   core.FloatPtr(core.FromPgFloat8(p.RA)),
		Dec:                  core.FloatPtr(core.FromPgFloat8(p.Dec)),
		B:                    core.FloatPtr(p.B),
		StellarDistance:      core.FloatPtr(p.StellarDistance),
		StellarDistanceUpper: core.FloatPtr(p.StellarDistanceUpper),
		StellarDistanceLower: core.FloatPtr(p.StellarDistanceLower),
	}
	if hasDiscoverer {
		d := p.Discoverer
		row.Discoverer = &d
	}
	return row
}

func fromRow(r planetRow) core.Planet {
	p := core.Planet{
		Name:                 r.Name,
		Period:               value(r.Period),
		TransitEpoch:         value(r.TransitEpoch),
		TransitDuration:      value(r.TransitDuration),
		Teff:                 value(r.Teff),
		StellarRadius:        value(r.StellarRadius),
		StellarMass:          value(r.StellarMass),
		J:                    value(r.J),
		PlanetRadius:         value(r.PlanetRadius),
		PlanetRadiusUpper:    value(r.PlanetRadiusUpper),
		PlanetRadiusLower:    value(r.PlanetRadiusLower),
		AOverR:               value(r.AOverR),
		RVSemiamplitude:      value(r.RVSemiamplitude),
		PlanetMass:           value(r.PlanetMass),
		PlanetMassUpper:      value(r.PlanetMassUpper),
		PlanetMassLower:      value(r.PlanetMassLower),
		RadiusRatio:          value(r.RadiusRatio),
		RA:                   pgFloat(r.RA),
		Dec:                  pgFloat(r.Dec),
		B:                    value(r.B),
		StellarDistance:      value(r.StellarDistance),
		StellarDistanceUpper: value(r.StellarDistanceUpper),
		StellarDistanceLower: value(r.StellarDistanceLower),
	}
	if r.Discoverer != nil {
		p.Discoverer = *r.Discoverer
	}
	return p
}

// value dereferences f, NaN if nil.
func value(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}

func pgFloat(f *float64) pgtype.Float8 {
	if f == nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: *f, Valid: true}
}
