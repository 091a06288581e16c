// Package dataset implements the tabular side of the classification pipeline.
//
// It keeps two views of an uploaded CSV:
//
//   - Table: the raw header and records exactly as uploaded. It is never
//     mutated and is the base of every response.
//   - Cleaned: a typed working copy (a gota DataFrame) used only to build the
//     model input. Column names are trimmed, rows holding a missing or
//     infinite value are removed and non-numeric columns are removed.
//
// # Row Alignment
//
// Cleaned.Index holds the positions (in the Table) of every row that
// survived cleaning, in order. Table.Subset(Cleaned.Index) yields the output
// base, so the i-th prediction always lands on the row it was computed from.
//
// # Usage
//
//	table, err := dataset.ReadCSV(r)
//	cleaned, err := dataset.Clean(table)
//	X, err := cleaned.Matrix(predictor.Features())
//	base, err := table.Subset(cleaned.Index)
package dataset
