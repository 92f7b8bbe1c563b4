// Package scale derives the color-scale domain from joined values and maps
// colormap names to gradients.
package scale

import (
	"math"

	"github.com/geo-labs/choromap/internal/domain"
)

// ColorScale is the value domain of a run. Computed once, shared read-only
// by the static and interactive renderers.
type ColorScale struct {
	Min float64
	Max float64
}

// FromFeatures computes the [min, max] domain over the non-missing values
// of the joined features. ok is false when no feature carries a value.
func FromFeatures(features []domain.Feature) (ColorScale, bool) {
	vals := make([]float64, 0, len(features))
	for _, f := range features {
		if f.HasValue() {
			vals = append(vals, f.Value)
		}
	}
	return FromValues(vals)
}

// FromValues computes the [min, max] domain over values, ignoring NaNs.
func FromValues(values []float64) (ColorScale, bool) {
	s := ColorScale{Min: math.Inf(1), Max: math.Inf(-1)}
	ok := false
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		ok = true
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	if !ok {
		return ColorScale{}, false
	}
	return s, true
}

// Normalize maps a value into [0, 1] within the domain, clamping values
// outside it. A degenerate domain (Min == Max) maps everything to 0.5.
func (s ColorScale) Normalize(v float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}
	if s.Max == s.Min {
		return 0.5
	}
	t := (v - s.Min) / (s.Max - s.Min)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
