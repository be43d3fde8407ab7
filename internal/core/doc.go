// Package core provides the catalog curation logic for transiting exoplanets.
//
// This package is the heart of exopop, containing all domain logic
// independent of any transport, storage or presentation layer. It can be used
// by the CLI, the HTTP server, or tests without modification.
//
// # Architecture
//
// The package is organized around two sequential stages:
//
//   - Ingestion: [ReadTable] parses a bar-delimited archive snapshot into a
//     [RawTable] keyed by archive-native column names. [TrimNonTransiting]
//     and [TrimInsufficient] drop rows that cannot be used, and [Normalize]
//     remaps the survivors into the canonical [MasterTable].
//   - Selection: named subsets are registered in a registry of
//     [SubsetDefinition] values, each carrying a pure inclusion predicate.
//     [Select] materializes a subset as an independent copy of the matching
//     rows.
//
// # Subset Registry
//
// Subsets are registered at init time using [Register]:
//
//	core.Register(core.SubsetDefinition{
//	    Info:    core.SubsetInfo{Key: "k", Group: "stellar", Label: "K"},
//	    Include: core.TeffBand(3800, 5300),
//	})
//
// Import internal/core/subsets to register the standard set.
//
// # Missing Values
//
// Per-row missing numbers are NaN in memory and null on every serialized
// surface. Right ascension and declination are nullable ([pgtype.Float8]);
// the archive encodes "not reported" as ra = dec = 0, so a genuine (0, 0)
// position cannot be told apart from a missing one.
//
// # Error Handling
//
// Structural problems abort the whole build:
//
//   - [ErrSourceUnavailable]: no snapshot could be obtained
//   - [SchemaMismatchError]: a required archive column is absent
//
// Technical errors are mapped to user-friendly messages using [MapError].
package core
