package core

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestReadTable(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHeader []string
		wantRows   [][]string
	}{
		{
			name:       "plain bars",
			input:      "pl_hostname|pl_letter\nKepler-10|b\nTOI-700|d\n",
			wantHeader: []string{"pl_hostname", "pl_letter"},
			wantRows:   [][]string{{"Kepler-10", "b"}, {"TOI-700", "d"}},
		},
		{
			name:       "framed lines",
			input:      "|pl_hostname|pl_letter|\n|Kepler-10|b|\n",
			wantHeader: []string{"pl_hostname", "pl_letter"},
			wantRows:   [][]string{{"Kepler-10", "b"}},
		},
		{
			name:       "header lowercased",
			input:      "PL_Hostname|PL_LETTER\nKepler-10|b\n",
			wantHeader: []string{"pl_hostname", "pl_letter"},
			wantRows:   [][]string{{"Kepler-10", "b"}},
		},
		{
			name:       "utf8 BOM stripped",
			input:      "\ufeffpl_hostname|pl_letter\nKepler-10|b\n",
			wantHeader: []string{"pl_hostname", "pl_letter"},
			wantRows:   [][]string{{"Kepler-10", "b"}},
		},
		{
			name:       "comments skipped",
			input:      "# archive export\npl_hostname|pl_letter\n# note\nKepler-10|b\n",
			wantHeader: []string{"pl_hostname", "pl_letter"},
			wantRows:   [][]string{{"Kepler-10", "b"}},
		},
		{
			name:       "blank rows skipped",
			input:      "pl_hostname|pl_letter\n|\nKepler-10|b\n",
			wantHeader: []string{"pl_hostname", "pl_letter"},
			wantRows:   [][]string{{"Kepler-10", "b"}},
		},
		{
			name:       "empty cells kept",
			input:      "pl_hostname|pl_ratdor|pl_letter\nTOI-700||d\n",
			wantHeader: []string{"pl_hostname", "pl_ratdor", "pl_letter"},
			wantRows:   [][]string{{"TOI-700", "", "d"}},
		},
		{
			name:       "header only",
			input:      "pl_hostname|pl_letter\n",
			wantHeader: []string{"pl_hostname", "pl_letter"},
			wantRows:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadTable(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadTable() error = %v", err)
			}
			if !reflect.DeepEqual(got.Header, tt.wantHeader) {
				t.Errorf("Header = %v, want %v", got.Header, tt.wantHeader)
			}
			if len(got.Rows) != len(tt.wantRows) {
				t.Fatalf("Rows = %v, want %v", got.Rows, tt.wantRows)
			}
			for i := range tt.wantRows {
				if !reflect.DeepEqual(got.Rows[i], tt.wantRows[i]) {
					t.Errorf("Rows[%d] = %v, want %v", i, got.Rows[i], tt.wantRows[i])
				}
			}
		})
	}
}

func TestReadTable_Empty(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no bytes", input: ""},
		{name: "comments only", input: "# nothing here\n"},
		{name: "BOM only", input: "\ufeff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(tt.input))
			if !errors.Is(err, ErrEmptyTable) {
				t.Errorf("ReadTable(%q) error = %v, want ErrEmptyTable", tt.input, err)
			}
		})
	}
}

func TestReadTable_InvalidUTF8(t *testing.T) {
	got, err := ReadTable(strings.NewReader("pl_hostname|pl_letter\nKep\xffler|b\n"))
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if got.Rows[0][0] != "Kep?ler" {
		t.Errorf("Rows[0][0] = %q, want %q", got.Rows[0][0], "Kep?ler")
	}
}

func TestReadTable_Fixture(t *testing.T) {
	raw := loadFixture(t)

	if raw.Len() != 8 {
		t.Errorf("Len() = %d, want 8", raw.Len())
	}
	if !raw.Has(ArcTranFlag) || !raw.Has(ArcPlFacility) {
		t.Errorf("fixture header missing expected columns: %v", raw.Header)
	}
	if got := raw.Cell(0, ArcPlFacility); got != TESSLabel {
		t.Errorf("Cell(0, %s) = %q, want %q", ArcPlFacility, got, TESSLabel)
	}
}

func TestRawTable_Cell(t *testing.T) {
	raw := NewRawTable([]string{"a", "b", "c"}, [][]string{{" 1 ", "2"}})

	tests := []struct {
		col  string
		want string
	}{
		{"a", "1"},
		{"b", "2"},
		{"c", ""},       // short row
		{"missing", ""}, // absent column
	}

	for _, tt := range tests {
		if got := raw.Cell(0, tt.col); got != tt.want {
			t.Errorf("Cell(0, %q) = %q, want %q", tt.col, got, tt.want)
		}
	}
}
