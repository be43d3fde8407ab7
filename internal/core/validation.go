package core

// validation.go checks archive tables before they are trimmed or normalized.
//
// Validation happens at two levels:
//  1. Header validation: required columns must be present, otherwise the
//     build fails with a SchemaMismatchError
//  2. Cell validation: non-empty numeric cells that do not parse are
//     reported, but never fail the build (they become NaN like empty cells)

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError represents a single suspicious cell.
type ValidationError struct {
	Row     int    // Zero-based data row
	Field   string // Archive column name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Message)
	}
	return e.Message
}

// ValidateHeaders checks that every listed column exists in the table.
// Returns a *SchemaMismatchError naming all missing columns.
func ValidateHeaders(t *RawTable, stage string, cols []string) error {
	var missing []string
	for _, col := range cols {
		if !t.Has(strings.ToLower(col)) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaMismatchError{Stage: stage, Missing: missing}
	}
	return nil
}

// ValidateCells returns every non-empty cell of a numeric archive column
// that does not parse as a number.
func ValidateCells(t *RawTable) []ValidationError {
	var errs []ValidationError
	for _, spec := range ArchiveColumns {
		if spec.Canonical == ColName || spec.Canonical == ColDiscoverer {
			continue
		}
		col, ok := spec.resolve(t)
		if !ok {
			continue
		}
		for i := range t.Rows {
			raw := t.Cell(i, col)
			if raw == "" {
				continue
			}
			if err := ValidateCell(raw); err != nil {
				errs = append(errs, ValidationError{
					Row:     i,
					Field:   col,
					Value:   raw,
					Message: err.Error(),
				})
			}
		}
	}
	return errs
}

// ValidateCell validates a single numeric cell.
// Returns nil if valid or empty.
func ValidateCell(value string) error {
	if value == "" {
		return nil
	}
	if math.IsNaN(ParseFloat(value)) && !strings.EqualFold(value, "nan") {
		return fmt.Errorf("invalid number format")
	}
	return nil
}
