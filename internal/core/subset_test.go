package core

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestSelect_Fixture(t *testing.T) {
	master := buildFixture(t)
	params := DefaultParams()
	ctx := context.Background()

	tests := []struct {
		name    string
		include IncludeFunc
		want    []string
	}{
		{name: "kepler", include: DiscoveredByKepler, want: []string{"Kepler-10b", "Kepler-186f"}},
		{name: "nonkepler", include: Not(DiscoveredByKepler), want: []string{"GJ 1214b", "HD 209458b", "TOI-700d"}},
		{name: "tess", include: DiscoveredByTESS, want: []string{"TOI-700d"}},
		{name: "goodmass", include: HasGoodMass, want: []string{"HD 209458b", "Kepler-10b"}},
		{name: "badmass", include: Not(HasGoodMass), want: []string{"GJ 1214b", "Kepler-186f", "TOI-700d"}},
		{name: "late-m", include: TeffBand(math.Inf(-1), 3400), want: []string{"GJ 1214b"}},
		{name: "early-m", include: TeffBand(3400, 3800), want: []string{"TOI-700d"}},
		{name: "m", include: TeffBand(math.Inf(-1), 3800), want: []string{"GJ 1214b", "TOI-700d"}},
		{name: "k", include: TeffBand(3800, 5300), want: []string{"Kepler-186f"}},
		{name: "g", include: TeffBand(5300, 6000), want: []string{"Kepler-10b"}},
		{name: "f", include: TeffBand(6000, 7200), want: []string{"HD 209458b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := SubsetDefinition{Info: SubsetInfo{Key: tt.name}, Include: tt.include}

			sub, err := Select(ctx, master, def, params)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			assertNames(t, "Names()", sub.Table.Names(), tt.want)
			if sub.Retained != len(tt.want) || sub.Removed != master.Len()-len(tt.want) {
				t.Errorf("Retained, Removed = %d, %d, want %d, %d",
					sub.Retained, sub.Removed, len(tt.want), master.Len()-len(tt.want))
			}
			if sub.Table.ID != master.ID {
				t.Errorf("subset ID = %v, want master ID %v", sub.Table.ID, master.ID)
			}
		})
	}
}

func TestSelect_ComplementsPartition(t *testing.T) {
	master := buildFixture(t)
	ctx := context.Background()

	pairs := [][2]IncludeFunc{
		{DiscoveredByKepler, Not(DiscoveredByKepler)},
		{HasGoodMass, Not(HasGoodMass)},
	}

	for i, pair := range pairs {
		a, err := Select(ctx, master, SubsetDefinition{Info: SubsetInfo{Key: "a"}, Include: pair[0]}, DefaultParams())
		if err != nil {
			t.Fatal(err)
		}
		b, err := Select(ctx, master, SubsetDefinition{Info: SubsetInfo{Key: "b"}, Include: pair[1]}, DefaultParams())
		if err != nil {
			t.Fatal(err)
		}

		if a.Retained+b.Retained != master.Len() {
			t.Errorf("pair %d: %d + %d rows, want %d", i, a.Retained, b.Retained, master.Len())
		}
		seen := make(map[string]bool)
		for _, name := range append(a.Table.Names(), b.Table.Names()...) {
			if seen[name] {
				t.Errorf("pair %d: %s in both subsets", i, name)
			}
			seen[name] = true
		}
	}
}

func TestSelect_IndependentCopy(t *testing.T) {
	master := buildFixture(t)
	name, teff := master.Planets[0].Name, master.Planets[0].Teff

	sub, err := Select(context.Background(), master,
		SubsetDefinition{Info: SubsetInfo{Key: "all"}, Include: Not(TeffBand(0, 0))}, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	sub.Table.Planets[0].Teff = -1
	sub.Table.Planets[0].Name = "mutated"

	if master.Planets[0].Name != name || master.Planets[0].Teff != teff {
		t.Errorf("master row = %s/%v after mutating subset, want %s/%v",
			master.Planets[0].Name, master.Planets[0].Teff, name, teff)
	}
}

func TestSelect_IncludeError(t *testing.T) {
	master := buildFixture(t)
	master.Optional = nil

	_, err := Select(context.Background(), master,
		SubsetDefinition{Info: SubsetInfo{Key: "tess"}, Include: DiscoveredByTESS}, DefaultParams())
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("Select() error = %v, want ErrSchemaMismatch", err)
	}
}

func TestSelectByKey(t *testing.T) {
	resetRegistry(t)
	Register(SubsetDefinition{Info: SubsetInfo{Key: "g"}, Include: TeffBand(5300, 6000)})

	master := buildFixture(t)

	sub, err := SelectByKey(context.Background(), master, "g", DefaultParams())
	if err != nil {
		t.Fatalf("SelectByKey(g) error = %v", err)
	}
	assertNames(t, "Names()", sub.Table.Names(), []string{"Kepler-10b"})

	_, err = SelectByKey(context.Background(), master, "hot-jupiters", DefaultParams())
	if !errors.Is(err, ErrUnknownSubset) {
		t.Errorf("SelectByKey(hot-jupiters) error = %v, want ErrUnknownSubset", err)
	}
}
