package core

// reader.go parses archive snapshots.
//
// The archive's "bar-delimited" format is a header row of column names
// followed by data rows, all separated by '|'. Some exports wrap every line
// in bars ("|a|b|"); that framing is detected on the header and stripped
// from every row. Lines starting with '#' are comments. Cells are kept as
// text; conversion happens in Normalize.

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Delimiter separates fields in archive snapshots.
const Delimiter = '|'

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadTable parses a bar-delimited archive table.
// Returns ErrEmptyTable if the input has no header row.
func ReadTable(r io.Reader) (*RawTable, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("skip BOM: %w", err)
		}
	}

	cr := csv.NewReader(br)
	cr.Comma = Delimiter
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("invalid table header: %w", err)
	}

	framed := isFramed(header)
	if framed {
		header = unframe(header)
	}
	for i, h := range header {
		header[i] = strings.ToLower(sanitizeCell(h))
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid table row: %w", err)
		}
		if framed {
			rec = unframe(rec)
		}
		if isBlank(rec) {
			continue
		}
		for i := range rec {
			rec[i] = sanitizeCell(rec[i])
		}
		rows = append(rows, rec)
	}

	return NewRawTable(header, rows), nil
}

// isFramed reports whether a record starts and ends with a bar.
func isFramed(rec []string) bool {
	return len(rec) >= 2 && strings.TrimSpace(rec[0]) == "" && strings.TrimSpace(rec[len(rec)-1]) == ""
}

// unframe drops the empty first and last fields of a framed record.
func unframe(rec []string) []string {
	if len(rec) < 2 {
		return rec
	}
	return rec[1 : len(rec)-1]
}

// isBlank reports whether every field of a record is empty.
func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// sanitizeCell replaces invalid UTF-8 with '?'.
func sanitizeCell(s string) string {
	return strings.ToValidUTF8(s, "?")
}
