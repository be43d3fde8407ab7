package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/exopop/internal/logging"
	"github.com/JonMunkholm/exopop/internal/metrics"
)

// BuildResult is the outcome of turning a raw snapshot into a master table.
type BuildResult struct {
	Table           *MasterTable
	Reports         []FilterReport
	AOverRFilled    int
	PositionsNulled int
	InvalidCells    int
}

// Build runs the ingestion stage: header validation, the transit and
// sufficiency filters, then normalization. Any error aborts the build; no
// partial table is returned.
func Build(ctx context.Context, raw *RawTable, source string) (*BuildResult, error) {
	logger := logging.WithFields(ctx, "source", source)

	if err := ValidateHeaders(raw, "load", RequiredArchiveColumns()); err != nil {
		return nil, err
	}

	logger.Info("original table loaded", "rows", raw.Len())
	metrics.RowsLoaded.Add(float64(raw.Len()))

	transiting, transitReport, err := TrimNonTransiting(raw)
	if err != nil {
		return nil, fmt.Errorf("transit filter: %w", err)
	}
	logger.Info("trimmed to transiting planets", "rows", transitReport.After, "removed", transitReport.Removed)
	metrics.RowsRemoved.WithLabelValues(StageTransit).Add(float64(transitReport.Removed))

	sufficient, sufficiencyReport, err := TrimInsufficient(transiting)
	if err != nil {
		return nil, fmt.Errorf("sufficiency filter: %w", err)
	}
	logger.Info("trimmed insufficient rows",
		"from", sufficiencyReport.Before,
		"to", sufficiencyReport.After,
	)
	if len(sufficiencyReport.RemovedNames) > 0 {
		logger.Debug("rows removed by sufficiency filter", "names", sufficiencyReport.RemovedNames)
	}
	metrics.RowsRemoved.WithLabelValues(StageSufficiency).Add(float64(sufficiencyReport.Removed))

	invalid := ValidateCells(sufficient)
	for _, ve := range invalid {
		logger.Debug("unparseable cell treated as missing", "row", ve.Row, "column", ve.Field, "value", ve.Value)
	}
	if len(invalid) > 0 {
		logger.Warn("unparseable numeric cells", "count", len(invalid))
		metrics.InvalidCells.Add(float64(len(invalid)))
	}

	norm, err := Normalize(sufficient)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	norm.Table.Source = source

	if norm.DiscovererMissing {
		logger.Warn("archive has no discoverer column; survey subsets use the legacy name classifier")
	}
	logger.Info("standard table created",
		"snapshot", norm.Table.ID,
		"rows", norm.Table.Len(),
		"a_over_r_filled", norm.AOverRFilled,
		"positions_nulled", norm.PositionsNulled,
	)
	metrics.AOverRFilled.Add(float64(norm.AOverRFilled))
	metrics.PositionsNulled.Add(float64(norm.PositionsNulled))
	metrics.MasterRows.Set(float64(norm.Table.Len()))

	return &BuildResult{
		Table:           norm.Table,
		Reports:         []FilterReport{transitReport, sufficiencyReport},
		AOverRFilled:    norm.AOverRFilled,
		PositionsNulled: norm.PositionsNulled,
		InvalidCells:    len(invalid),
	}, nil
}
