package domain

import "math"

// Row is a single CSV record: a country identifier and a numeric value.
// The identifier is either a free-text country name or an ISO 3166-1 code,
// depending on which column it was read from.
type Row struct {
	// Identifier is the raw country identifier from the CSV.
	Identifier string

	// Value is the numeric value to plot. NaN means the value column was
	// empty or could not be parsed; the row is kept so the country still
	// renders in the missing color.
	Value float64
}

// HasValue reports whether the row carries a plottable value.
func (r Row) HasValue() bool { return !math.IsNaN(r.Value) }

// ResolvedRow is a Row whose identifier resolved to a canonical ISO 3166-1
// alpha-3 code. Rows that fail resolution are dropped, not retried.
type ResolvedRow struct {
	ISO3  string
	Value float64
}

// HasValue reports whether the resolved row carries a plottable value.
func (r ResolvedRow) HasValue() bool { return !math.IsNaN(r.Value) }
