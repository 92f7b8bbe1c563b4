package domain

import (
	"math"

	"github.com/twpayne/go-geom"
)

// Feature is one world country joined with its data value. Every Feature
// holds exactly one geometry (Polygon or MultiPolygon) and one value slot;
// countries without a matching data row carry NaN and render in the missing
// color.
type Feature struct {
	// ISO3 is the canonical ISO 3166-1 alpha-3 code of the country.
	ISO3 string

	// Name is the display name from the geometry dataset.
	Name string

	// Geometry is the country boundary, a *geom.Polygon or *geom.MultiPolygon
	// in lon/lat (WGS 84) coordinates.
	Geometry geom.T

	// Value is the joined data value, NaN when no row matched this country.
	Value float64
}

// HasValue reports whether a data row matched this country.
func (f Feature) HasValue() bool { return !math.IsNaN(f.Value) }
