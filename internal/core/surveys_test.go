package core

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()

	if p.MassThreshold != 2.5 {
		t.Errorf("MassThreshold = %v, want 2.5", p.MassThreshold)
	}
	if got := p.MaxRelativeMassUncertainty(); got != 0.4 {
		t.Errorf("MaxRelativeMassUncertainty() = %v, want 0.4", got)
	}
	if !reflect.DeepEqual(p.Surveys.TESS, []string{TESSLabel}) {
		t.Errorf("TESS labels = %v, want [%s]", p.Surveys.TESS, TESSLabel)
	}
	if len(p.Surveys.LegacyKeplerFragments) != len(LegacyKeplerFragmentsV1) {
		t.Errorf("legacy fragments = %v, want v1 list", p.Surveys.LegacyKeplerFragments)
	}

	// The defaults own their slices.
	p.Surveys.LegacyKeplerFragments[0] = "changed"
	if LegacyKeplerFragmentsV1[0] != "Kepler" {
		t.Error("DefaultSurveyLabels shares its fragment list with LegacyKeplerFragmentsV1")
	}
}

func TestLoadSurveyLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surveys.yaml")
	content := `version: v2
kepler:
  - Kepler
  - K2
  - Kepler Space Telescope
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadSurveyLabels(path)
	if err != nil {
		t.Fatalf("LoadSurveyLabels() error = %v", err)
	}

	if got.Version != "v2" {
		t.Errorf("Version = %q, want v2", got.Version)
	}
	if len(got.Kepler) != 3 || got.Kepler[2] != "Kepler Space Telescope" {
		t.Errorf("Kepler = %v, want three labels", got.Kepler)
	}
	// Omitted lists keep their defaults.
	if !reflect.DeepEqual(got.TESS, []string{TESSLabel}) {
		t.Errorf("TESS = %v, want default", got.TESS)
	}
	if len(got.LegacyKeplerFragments) != len(LegacyKeplerFragmentsV1) {
		t.Errorf("LegacyKeplerFragments = %v, want default", got.LegacyKeplerFragments)
	}
}

func TestLoadSurveyLabels_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSurveyLabels(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadSurveyLabels(missing) succeeded, want error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("kepler: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSurveyLabels(bad); err == nil {
		t.Error("LoadSurveyLabels(bad yaml) succeeded, want error")
	}
}

func TestParams_Fingerprint(t *testing.T) {
	base := DefaultParams()
	if base.Fingerprint() != DefaultParams().Fingerprint() {
		t.Error("Fingerprint() differs for equal params")
	}

	threshold := DefaultParams()
	threshold.MassThreshold = 3
	labels := DefaultParams()
	labels.Surveys.TESS = []string{"TESS"}

	for name, p := range map[string]Params{"threshold": threshold, "labels": labels} {
		if p.Fingerprint() == base.Fingerprint() {
			t.Errorf("%s: Fingerprint() unchanged", name)
		}
		if len(p.Fingerprint()) != 8 {
			t.Errorf("%s: Fingerprint() = %q, want 8 hex digits", name, p.Fingerprint())
		}
	}
}
