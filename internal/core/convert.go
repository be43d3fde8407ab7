package core

// convert.go provides conversion functions for archive cells.
//
// Archive snapshots are mostly clean, but cells still arrive as text:
//   - Empty fields mean "not reported"
//   - Numbers may use scientific notation
//   - The transit flag is written as 0/1
//
// Numeric cells that are empty or unparseable become NaN so downstream
// predicates can treat them with ordinary float comparisons (NaN fails all of
// them). Nullable canonical columns use pgtype.Float8 with Valid=false.

import (
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// ParseFloat converts a cell to float64.
// Returns NaN if the cell is empty or not a number.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ParseFlag reports whether a 0/1 flag cell is set.
// Anything other than a number equal to 1 is false.
func ParseFlag(s string) bool {
	return ParseFloat(s) == 1
}

// ToPgFloat8 converts a float to pgtype.Float8.
// Returns invalid for non-finite values.
func ToPgFloat8(f float64) pgtype.Float8 {
	if !isFinite(f) {
		return pgtype.Float8{Valid: false}
	}
	return pgtype.Float8{Float64: f, Valid: true}
}

// FromPgFloat8 converts a pgtype.Float8 to float64, NaN if invalid.
func FromPgFloat8(f pgtype.Float8) float64 {
	if !f.Valid {
		return math.NaN()
	}
	return f.Float64
}

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

// CleanCell trims surrounding whitespace from a cell value.
// Interior characters are never altered.
func CleanCell(s string) string {
	return strings.TrimSpace(s)
}
