package core

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
)

// ============================================================================
// Conversion Function Benchmarks
// ============================================================================

// BenchmarkParseFloat benchmarks numeric cell conversion.
// Every numeric archive cell passes through it during normalization.
func BenchmarkParseFloat(b *testing.B) {
	testCases := []string{
		"3480",
		"0.837495",
		"2454964.57513",
		"-0.08",
		"1.5e-3",
		"", // Missing
		"  9.469  ",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			ParseFloat(tc)
		}
	}
}

// ============================================================================
// Parsing Benchmarks
// ============================================================================

// BenchmarkReadTable benchmarks parsing an archive-sized snapshot.
func BenchmarkReadTable(b *testing.B) {
	data := generateArchive(5000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ReadTable(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================================
// Pipeline Benchmarks
// ============================================================================

// BenchmarkBuild benchmarks filtering and normalizing a parsed snapshot.
func BenchmarkBuild(b *testing.B) {
	raw, err := ReadTable(bytes.NewReader(generateArchive(5000)))
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Build(ctx, raw, "bench"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSelect benchmarks subset selection over a built table.
func BenchmarkSelect(b *testing.B) {
	raw, err := ReadTable(bytes.NewReader(generateArchive(5000)))
	if err != nil {
		b.Fatal(err)
	}
	result, err := Build(context.Background(), raw, "bench")
	if err != nil {
		b.Fatal(err)
	}

	defs := []SubsetDefinition{
		{Info: SubsetInfo{Key: "kepler"}, Include: DiscoveredByKepler},
		{Info: SubsetInfo{Key: "goodmass"}, Include: HasGoodMass},
		{Info: SubsetInfo{Key: "k"}, Include: TeffBand(3800, 5300)},
	}
	params := DefaultParams()

	for _, def := range defs {
		b.Run(def.Info.Key, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Select(context.Background(), result.Table, def, params); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// ============================================================================
// Helper Functions
// ============================================================================

// generateArchive generates a bar-delimited snapshot with the given number
// of rows. Every fourth row is non-transiting.
func generateArchive(rows int) []byte {
	var buf bytes.Buffer

	header := RequiredArchiveColumns()
	header = append(header, ArcPlFacility)
	buf.WriteString(strings.Join(header, "|"))
	buf.WriteByte('\n')

	facilities := []string{"Kepler", "K2", TESSLabel, "SuperWASP"}
	for i := 0; i < rows; i++ {
		cells := make([]string, len(header))
		for j, col := range header {
			switch col {
			case ArcHostname:
				cells[j] = fmt.Sprintf("Host-%d", i)
			case ArcLetter:
				cells[j] = "b"
			case ArcTranFlag:
				cells[j] = map[bool]string{true: "0", false: "1"}[i%4 == 3]
			case ArcTeff:
				cells[j] = fmt.Sprintf("%d", 3000+i%4000)
			case ArcJ:
				cells[j] = "10.5"
			case ArcPlFacility:
				cells[j] = facilities[i%len(facilities)]
			case ArcRatDor:
				if i%2 == 0 {
					cells[j] = "12.3"
				}
			default:
				cells[j] = "1.25"
			}
		}
		buf.WriteString(strings.Join(cells, "|"))
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}
