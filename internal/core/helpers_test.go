package core

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// fixturePath is the trimmed archive snapshot shared by the core tests.
var fixturePath = filepath.Join("testdata", "archive.psv")

// loadFixture parses the test snapshot.
func loadFixture(t *testing.T) *RawTable {
	t.Helper()

	f, err := os.Open(fixturePath)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	raw, err := ReadTable(f)
	if err != nil {
		t.Fatalf("ReadTable(fixture) error = %v", err)
	}
	return raw
}

// buildFixture runs the full ingestion stage over the test snapshot.
func buildFixture(t *testing.T) *MasterTable {
	t.Helper()

	result, err := Build(context.Background(), loadFixture(t), "fixture")
	if err != nil {
		t.Fatalf("Build(fixture) error = %v", err)
	}
	return result.Table
}

// planetNamed returns the row with the given name.
func planetNamed(t *testing.T, table *MasterTable, name string) Planet {
	t.Helper()

	for _, p := range table.Planets {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no planet named %q in %v", name, table.Names())
	return Planet{}
}

// maskNames returns the names of the rows selected by mask.
func maskNames(table *MasterTable, mask []bool) []string {
	var names []string
	for i, ok := range mask {
		if ok {
			names = append(names, table.Planets[i].Name)
		}
	}
	return names
}

// assertNames fails unless got equals want, treating nil and empty alike.
func assertNames(t *testing.T, label string, got, want []string) {
	t.Helper()

	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}

// tableOf builds a small master table with a discoverer column.
func tableOf(planets ...Planet) *MasterTable {
	return &MasterTable{
		Source:   "test",
		Optional: []string{ColDiscoverer},
		Planets:  planets,
	}
}

// blankPlanet returns a planet whose numeric fields are all missing.
func blankPlanet(name string) Planet {
	nan := math.NaN()
	return Planet{
		Name:                 name,
		Period:               nan,
		TransitEpoch:         nan,
		TransitDuration:      nan,
		Teff:                 nan,
		StellarRadius:        nan,
		StellarMass:          nan,
		J:                    nan,
		PlanetRadius:         nan,
		PlanetRadiusUpper:    nan,
		PlanetRadiusLower:    nan,
		AOverR:               nan,
		RVSemiamplitude:      nan,
		PlanetMass:           nan,
		PlanetMassUpper:      nan,
		PlanetMassLower:      nan,
		RadiusRatio:          nan,
		B:                    nan,
		StellarDistance:      nan,
		StellarDistanceUpper: nan,
		StellarDistanceLower: nan,
	}
}
