package core

import (
	"errors"
	"math"
	"testing"
)

func TestStats_Fixture(t *testing.T) {
	master := buildFixture(t)

	tests := []struct {
		column      string
		wantCount   int
		wantMissing int
		wantMean    float64
		wantMedian  float64
		wantMin     float64
		wantMax     float64
	}{
		{column: ColTeff, wantCount: 5, wantMissing: 0, wantMean: 4415.8, wantMedian: 3800, wantMin: 3026, wantMax: 6065},
		{column: ColPlanetMass, wantCount: 3, wantMissing: 2, wantMean: (6.26 + 219 + 3.33) / 3, wantMedian: 6.26, wantMin: 3.33, wantMax: 219},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got, err := Stats(master, tt.column)
			if err != nil {
				t.Fatalf("Stats(%s) error = %v", tt.column, err)
			}
			if got.Count != tt.wantCount || got.Missing != tt.wantMissing {
				t.Errorf("Count, Missing = %d, %d, want %d, %d", got.Count, got.Missing, tt.wantCount, tt.wantMissing)
			}
			checkStat(t, "Mean", got.Mean, tt.wantMean)
			checkStat(t, "Median", got.Median, tt.wantMedian)
			checkStat(t, "Min", got.Min, tt.wantMin)
			checkStat(t, "Max", got.Max, tt.wantMax)
			if got.StdDev == nil || *got.StdDev <= 0 {
				t.Errorf("StdDev = %v, want positive", got.StdDev)
			}
		})
	}
}

func TestStats_SingleValue(t *testing.T) {
	p := blankPlanet("a")
	p.J = 9.5

	got, err := Stats(tableOf(p), ColJ)
	if err != nil {
		t.Fatal(err)
	}
	checkStat(t, "StdDev", got.StdDev, 0)
	checkStat(t, "Median", got.Median, 9.5)
}

func TestStats_EvenCountMedian(t *testing.T) {
	var planets []Planet
	for i, j := range []float64{12, 8, math.NaN(), 10, 9} {
		p := blankPlanet(string(rune('a' + i)))
		p.J = j
		planets = append(planets, p)
	}

	got, err := Stats(tableOf(planets...), ColJ)
	if err != nil {
		t.Fatal(err)
	}
	if got.Count != 4 || got.Missing != 1 {
		t.Errorf("Count, Missing = %d, %d, want 4, 1", got.Count, got.Missing)
	}
	checkStat(t, "Median", got.Median, 9.5)
	checkStat(t, "Min", got.Min, 8)
	checkStat(t, "Max", got.Max, 12)
}

func TestStats_AllMissing(t *testing.T) {
	got, err := Stats(tableOf(blankPlanet("a"), blankPlanet("b")), ColRVSemiamplitude)
	if err != nil {
		t.Fatal(err)
	}
	if got.Count != 0 || got.Missing != 2 {
		t.Errorf("Count, Missing = %d, %d, want 0, 2", got.Count, got.Missing)
	}
	if got.Mean != nil || got.Median != nil || got.StdDev != nil {
		t.Errorf("summary values set for an empty column: %+v", got)
	}
}

func TestStats_UnknownColumn(t *testing.T) {
	_, err := Stats(tableOf(blankPlanet("a")), ColDiscoverer)
	if !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Stats(discoverer) error = %v, want ErrUnknownColumn", err)
	}
}

func checkStat(t *testing.T, label string, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Errorf("%s = nil, want %v", label, want)
		return
	}
	if math.Abs(*got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", label, *got, want)
	}
}

func TestHighlight(t *testing.T) {
	master := buildFixture(t)

	tests := []struct {
		needle string
		want   []string
	}{
		{needle: "hd 209458", want: []string{"HD 209458b"}},
		{needle: "gj1214", want: []string{"GJ 1214b"}},
		{needle: "KEPLER-1", want: []string{"Kepler-10b", "Kepler-186f"}},
		{needle: " Kepler-186 f ", want: []string{"Kepler-186f"}},
		{needle: "WASP-18", want: nil},
		{needle: "", want: []string{"GJ 1214b", "HD 209458b", "Kepler-10b", "Kepler-186f", "TOI-700d"}},
	}

	for _, tt := range tests {
		t.Run(tt.needle, func(t *testing.T) {
			got, err := Highlight(master, tt.needle)
			if err != nil {
				t.Fatalf("Highlight(%q) error = %v", tt.needle, err)
			}
			assertNames(t, "Names()", got.Names(), tt.want)
		})
	}
}
