package core

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ColumnStats summarizes the finite values of one numeric column.
type ColumnStats struct {
	Column  string   `json:"column"`
	Count   int      `json:"count"`   // finite values
	Missing int      `json:"missing"` // NaN or infinite values
	Mean    *float64 `json:"mean"`
	StdDev  *float64 `json:"std_dev"`
	Median  *float64 `json:"median"` // mean of the two middle values for even counts
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
}

// Stats computes summary statistics for a numeric column.
// Missing values are excluded; with no finite values only the counts are set.
func Stats(t *MasterTable, column string) (ColumnStats, error) {
	values, err := t.Floats(column)
	if err != nil {
		return ColumnStats{}, err
	}

	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if isFinite(v) {
			finite = append(finite, v)
		}
	}

	cs := ColumnStats{
		Column:  column,
		Count:   len(finite),
		Missing: len(values) - len(finite),
	}
	if len(finite) == 0 {
		return cs, nil
	}

	sort.Float64s(finite)

	cs.Mean = FloatPtr(stat.Mean(finite, nil))
	cs.Median = FloatPtr(median(finite))
	cs.Min = FloatPtr(finite[0])
	cs.Max = FloatPtr(finite[len(finite)-1])
	if len(finite) > 1 {
		cs.StdDev = FloatPtr(stat.StdDev(finite, nil))
	} else {
		cs.StdDev = FloatPtr(0)
	}

	return cs, nil
}


// median returns the middle of sorted, averaging the two middle values when
// the count is even.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return stat.Quantile(0.5, stat.Empirical, sorted, nil)
	}
	return stat.Mean(sorted[n/2-1:n/2+1], nil)
}
