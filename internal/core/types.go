// Package core provides the catalog curation logic for transiting exoplanets.
// This package has no transport dependencies and can be used by any frontend.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// RawSource provides a raw archive table, however it was obtained.
type RawSource interface {
	Load(ctx context.Context) (*RawTable, error)
}

// HeaderIndex maps column names (lowercase) to their position in a row.
type HeaderIndex map[string]int

// RawTable is an archive table in its native column naming.
type RawTable struct {
	Header []string
	Index  HeaderIndex
	Rows   [][]string
}

// NewRawTable builds a RawTable from a header and its rows.
func NewRawTable(header []string, rows [][]string) *RawTable {
	return &RawTable{
		Header: header,
		Index:  MakeHeaderIndex(header),
		Rows:   rows,
	}
}

// Len returns the number of data rows.
func (t *RawTable) Len() int {
	return len(t.Rows)
}

// Has reports whether the column is present in the header.
func (t *RawTable) Has(col string) bool {
	_, ok := t.Index[col]
	return ok
}

// Cell returns the cleaned value at row i for the column.
// Returns "" if the column is absent or the row is short.
func (t *RawTable) Cell(i int, col string) string {
	pos, ok := t.Index[col]
	if !ok || pos >= len(t.Rows[i]) {
		return ""
	}
	return CleanCell(t.Rows[i][pos])
}

// Float returns the numeric value at row i for the column, NaN if missing.
func (t *RawTable) Float(i int, col string) float64 {
	return ParseFloat(t.Cell(i, col))
}

// Keep returns a new table with the rows where mask is true.
func (t *RawTable) Keep(mask []bool) *RawTable {
	rows := make([][]string, 0, len(t.Rows))
	for i, ok := range mask {
		if ok {
			rows = append(rows, t.Rows[i])
		}
	}
	return &RawTable{Header: t.Header, Index: t.Index, Rows: rows}
}

// Planet is one row of the canonical table.
type Planet struct {
	Name string

	Period          float64 // days
	TransitEpoch    float64
	TransitDuration float64

	Teff          float64 // K
	StellarRadius float64 // solar radii
	StellarMass   float64 // solar masses
	J             float64 // mag

	PlanetRadius      float64
	PlanetRadiusUpper float64
	PlanetRadiusLower float64

	AOverR          float64
	RVSemiamplitude float64

	PlanetMass      float64
	PlanetMassUpper float64
	PlanetMassLower float64

	RadiusRatio float64

	RA  pgtype.Float8
	Dec pgtype.Float8

	B float64

	StellarDistance      float64
	StellarDistanceUpper float64
	StellarDistanceLower float64

	Discoverer string
}

// planetJSON is the wire form of Planet: NaN becomes null.
type planetJSON struct {
	Name                 string        `json:"name"`
	Period               *float64      `json:"period"`
	TransitEpoch         *float64      `json:"transit_epoch"`
	TransitDuration      *float64      `json:"transit_duration"`
	Teff                 *float64      `json:"teff"`
	StellarRadius        *float64      `json:"stellar_radius"`
	StellarMass          *float64      `json:"stellar_mass"`
	J                    *float64      `json:"J"`
	PlanetRadius         *float64      `json:"planet_radius"`
	PlanetRadiusUpper    *float64      `json:"planet_radius_upper"`
	PlanetRadiusLower    *float64      `json:"planet_radius_lower"`
	AOverR               *float64      `json:"a_over_r"`
	RVSemiamplitude      *float64      `json:"rv_semiamplitude"`
	PlanetMass           *float64      `json:"planet_mass"`
	PlanetMassUpper      *float64      `json:"planet_mass_upper"`
	PlanetMassLower      *float64      `json:"planet_mass_lower"`
	RadiusRatio          *float64      `json:"radius_ratio"`
	RA                   pgtype.Float8 `json:"ra"`
	Dec                  pgtype.Float8 `json:"dec"`
	B                    *float64      `json:"b"`
	StellarDistance      *float64      `json:"stellar_distance"`
	StellarDistanceUpper *float64      `json:"stellar_distance_upper"`
	StellarDistanceLower *float64      `json:"stellar_distance_lower"`
	Discoverer           string        `json:"discoverer,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (p Planet) MarshalJSON() ([]byte, error) {
	return json.Marshal(planetJSON{
		Name:                 p.Name,
		Period:               FloatPtr(p.Period),
		TransitEpoch:         FloatPtr(p.TransitEpoch),
		TransitDuration:      FloatPtr(p.TransitDuration),
		Teff:                 FloatPtr(p.Teff),
		StellarRadius:        FloatPtr(p.StellarRadius),
		StellarMass:          FloatPtr(p.StellarMass),
		J:                    FloatPtr(p.J),
		PlanetRadius:         FloatPtr(p.PlanetRadius),
		PlanetRadiusUpper:    FloatPtr(p.PlanetRadiusUpper),
		PlanetRadiusLower:    FloatPtr(p.PlanetRadiusLower),
		AOverR:               FloatPtr(p.AOverR),
		RVSemiamplitude:      FloatPtr(p.RVSemiamplitude),
		PlanetMass:           FloatPtr(p.PlanetMass),
		PlanetMassUpper:      FloatPtr(p.PlanetMassUpper),
		PlanetMassLower:      FloatPtr(p.PlanetMassLower),
		RadiusRatio:          FloatPtr(p.RadiusRatio),
		RA:                   p.RA,
		Dec:                  p.Dec,
		B:                    FloatPtr(p.B),
		StellarDistance:      FloatPtr(p.StellarDistance),
		StellarDistanceUpper: FloatPtr(p.StellarDistanceUpper),
		StellarDistanceLower: FloatPtr(p.StellarDistanceLower),
		Discoverer:           p.Discoverer,
	})
}

// MasterTable is the normalized, name-sorted table of one archive snapshot.
// It is treated as immutable once Normalize returns it.
type MasterTable struct {
	ID       uuid.UUID `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`

	// Optional lists the optional canonical columns present in the snapshot.
	Optional []string `json:"optional_columns,omitempty"`

	Planets []Planet `json:"planets"`
}

// Len returns the number of rows.
func (t *MasterTable) Len() int {
	return len(t.Planets)
}

// HasColumn reports whether a canonical column is present.
// Fixed columns are always present; optional ones only if the archive had them.
func (t *MasterTable) HasColumn(name string) bool {
	if _, ok := floatColumnIndex[name]; ok {
		return true
	}
	if name == ColName {
		return true
	}
	for _, c := range t.Optional {
		if c == name {
			return true
		}
	}
	return false
}

// Names returns the name column.
func (t *MasterTable) Names() []string {
	names := make([]string, len(t.Planets))
	for i := range t.Planets {
		names[i] = t.Planets[i].Name
	}
	return names
}

// Floats returns a copy of a numeric column by canonical name.
func (t *MasterTable) Floats(name string) ([]float64, error) {
	col, ok := floatColumnIndex[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]float64, len(t.Planets))
	for i := range t.Planets {
		out[i] = col.get(&t.Planets[i])
	}
	return out, nil
}

// Strings returns a copy of a text column by canonical name.
func (t *MasterTable) Strings(name string) ([]string, error) {
	switch name {
	case ColName:
		return t.Names(), nil
	case ColDiscoverer:
		if !t.HasColumn(ColDiscoverer) {
			return nil, &SchemaMismatchError{Stage: "select", Missing: []string{ColDiscoverer}}
		}
		out := make([]string, len(t.Planets))
		for i := range t.Planets {
			out[i] = t.Planets[i].Discoverer
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
}

// Filter returns an independent table holding the rows where mask is true,
// in their original order.
func (t *MasterTable) Filter(mask []bool) (*MasterTable, error) {
	if len(mask) != len(t.Planets) {
		return nil, fmt.Errorf("mask length %d does not match table length %d", len(mask), len(t.Planets))
	}
	planets := make([]Planet, 0, countTrue(mask))
	for i, ok := range mask {
		if ok {
			planets = append(planets, t.Planets[i])
		}
	}
	out := t.withPlanets(planets)
	return out, nil
}

// Clone returns a deep copy of the table.
func (t *MasterTable) Clone() *MasterTable {
	planets := make([]Planet, len(t.Planets))
	copy(planets, t.Planets)
	return t.withPlanets(planets)
}

func (t *MasterTable) withPlanets(planets []Planet) *MasterTable {
	var optional []string
	if len(t.Optional) > 0 {
		optional = append([]string(nil), t.Optional...)
	}
	return &MasterTable{
		ID:       t.ID,
		Source:   t.Source,
		LoadedAt: t.LoadedAt,
		Optional: optional,
		Planets:  planets,
	}
}

// FloatPtr returns nil for non-finite values.
func FloatPtr(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// countTrue returns the number of true entries in a mask.
func countTrue(mask []bool) int {
	n := 0
	for _, ok := range mask {
		if ok {
			n++
		}
	}
	return n
}
