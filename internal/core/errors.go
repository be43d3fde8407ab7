package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceUnavailable means no archive snapshot could be obtained from
	// the cache or the network.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSchemaMismatch means a structurally required column is absent.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrUnknownSubset means no subset is registered under a key.
	ErrUnknownSubset = errors.New("unknown subset")

	// ErrUnknownColumn means a canonical column name does not exist.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrEmptyTable means the input had no header row.
	ErrEmptyTable = errors.New("empty file")
)

// SchemaMismatchError names the required columns missing from a table.
type SchemaMismatchError struct {
	Stage   string   // Pipeline stage that detected the problem
	Missing []string // Missing column names, in schema order
}

func (e *SchemaMismatchError) Error() string {
	cols := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		cols[i] = fmt.Sprintf("%q", c)
	}
	msg := "schema mismatch: missing required column " + strings.Join(cols, ", ")
	if e.Stage != "" {
		msg = e.Stage + ": " + msg
	}
	return msg
}

// Column returns the first missing column.
func (e *SchemaMismatchError) Column() string {
	if len(e.Missing) == 0 {
		return ""
	}
	return e.Missing[0]
}

// Is lets errors.Is match ErrSchemaMismatch.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}
