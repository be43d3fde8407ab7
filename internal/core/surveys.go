package core

import (
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMassThreshold is the default signal-to-noise threshold for mass
// measurements: relative uncertainty must be below 1/2.5 = 0.4.
const DefaultMassThreshold = 2.5

// TESSLabel is the archive's discoverer label for TESS.
const TESSLabel = "Transiting Exoplanet Survey Satellite (TESS)"

// LegacyKeplerFragmentsVersion identifies LegacyKeplerFragmentsV1.
const LegacyKeplerFragmentsVersion = "v1"

// LegacyKeplerFragmentsV1 are planet-name fragments that indicate a Kepler
// or K2 discovery. Used only for archives without a discoverer column.
//
// Deprecated: classify by discoverer label instead; this list is kept for
// snapshots that predate the archive's discovery-facility column.
var LegacyKeplerFragmentsV1 = []string{
	"Kepler", "K2", "KIC", "KOI", "PH", "116454", "WASP-47d", "WASP-47e",
	"HD 3167", "EPIC", "106315", "41378", "BD+20",
}

// SurveyLabels lists the discoverer labels that identify each survey.
type SurveyLabels struct {
	Version               string   `yaml:"version"`
	Kepler                []string `yaml:"kepler"`
	TESS                  []string `yaml:"tess"`
	LegacyKeplerFragments []string `yaml:"legacy_kepler_fragments"`
}

// DefaultSurveyLabels returns the labels used by the archive.
func DefaultSurveyLabels() SurveyLabels {
	return SurveyLabels{
		Version:               LegacyKeplerFragmentsVersion,
		Kepler:                []string{"Kepler", "K2"},
		TESS:                  []string{TESSLabel},
		LegacyKeplerFragments: append([]string(nil), LegacyKeplerFragmentsV1...),
	}
}

// Params are the explicit inputs of every subset predicate.
type Params struct {
	MassThreshold float64
	Surveys       SurveyLabels
}

// DefaultParams returns the standard selection parameters.
func DefaultParams() Params {
	return Params{
		MassThreshold: DefaultMassThreshold,
		Surveys:       DefaultSurveyLabels(),
	}
}

// MaxRelativeMassUncertainty returns 1/threshold.
func (p Params) MaxRelativeMassUncertainty() float64 {
	return 1.0 / p.MassThreshold
}

// Fingerprint identifies the parameter values, so results computed under
// different parameters are never confused.
func (p Params) Fingerprint() string {
	h := fnv.New32a()
	h.Write([]byte(strconv.FormatFloat(p.MassThreshold, 'g', -1, 64)))
	for _, list := range [][]string{p.Surveys.Kepler, p.Surveys.TESS, p.Surveys.LegacyKeplerFragments} {
		h.Write([]byte{0})
		h.Write([]byte(strings.Join(list, "\x1f")))
	}
	return fmt.Sprintf("%08x", h.Sum32())
}

// LoadSurveyLabels reads survey labels from a YAML file.
// Lists omitted from the file keep their default values.
func LoadSurveyLabels(path string) (SurveyLabels, error) {
	labels := DefaultSurveyLabels()

	data, err := os.ReadFile(path)
	if err != nil {
		return labels, fmt.Errorf("read survey labels: %w", err)
	}

	var file SurveyLabels
	if err := yaml.Unmarshal(data, &file); err != nil {
		return labels, fmt.Errorf("parse survey labels %s: %w", path, err)
	}

	if file.Version != "" {
		labels.Version = file.Version
	}
	if len(file.Kepler) > 0 {
		labels.Kepler = file.Kepler
	}
	if len(file.TESS) > 0 {
		labels.TESS = file.TESS
	}
	if len(file.LegacyKeplerFragments) > 0 {
		labels.LegacyKeplerFragments = file.LegacyKeplerFragments
	}

	return labels, nil
}
