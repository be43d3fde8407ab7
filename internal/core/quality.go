package core

// Filter stage names used in reports, logs and metrics.
const (
	StageTransit     = "transit"
	StageSufficiency = "sufficiency"
)

// MinMagnitude is the exclusive lower bound on the J magnitude.
const MinMagnitude = 1.0

// FilterReport describes one row-filtering stage.
// Reports are for observability only; nothing downstream reads them.
type FilterReport struct {
	Stage        string   `json:"stage"`
	Before       int      `json:"before"`
	After        int      `json:"after"`
	Removed      int      `json:"removed"`
	RemovedNames []string `json:"removed_names,omitempty"`
}

// TrimNonTransiting keeps the rows flagged as transiting (pl_tranflag == 1).
func TrimNonTransiting(t *RawTable) (*RawTable, FilterReport, error) {
	if err := ValidateHeaders(t, StageTransit, []string{ArcTranFlag}); err != nil {
		return nil, FilterReport{}, err
	}

	mask := make([]bool, t.Len())
	for i := range t.Rows {
		mask[i] = ParseFlag(t.Cell(i, ArcTranFlag))
	}

	return t.Keep(mask), newReport(StageTransit, t, mask, false), nil
}

// TrimInsufficient keeps the rows with st_j > 1.0 and st_rad > 0.
// Both comparisons are strict, so a magnitude of exactly 1.0 is removed.
func TrimInsufficient(t *RawTable) (*RawTable, FilterReport, error) {
	if err := ValidateHeaders(t, StageSufficiency, []string{ArcJ, ArcStRad, ArcHostname, ArcLetter}); err != nil {
		return nil, FilterReport{}, err
	}

	mask := make([]bool, t.Len())
	for i := range t.Rows {
		mask[i] = t.Float(i, ArcJ) > MinMagnitude && t.Float(i, ArcStRad) > 0
	}

	return t.Keep(mask), newReport(StageSufficiency, t, mask, true), nil
}

// newReport summarizes a mask applied to t.
func newReport(stage string, t *RawTable, mask []bool, withNames bool) FilterReport {
	kept := countTrue(mask)
	report := FilterReport{
		Stage:   stage,
		Before:  t.Len(),
		After:   kept,
		Removed: t.Len() - kept,
	}
	if withNames {
		for i, ok := range mask {
			if !ok {
				report.RemovedNames = append(report.RemovedNames, rawName(t, i))
			}
		}
	}
	return report
}

// rawName builds the planet name of a raw row.
func rawName(t *RawTable, i int) string {
	return t.Cell(i, ArcHostname) + t.Cell(i, ArcLetter)
}
