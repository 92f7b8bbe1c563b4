package geo

import (
	"math"

	"github.com/geo-labs/choromap/internal/domain"
)

// JoinResult is the outcome of joining resolved rows onto world polygons.
type JoinResult struct {
	// Features holds every world country once, in dataset order, with the
	// joined value or NaN.
	Features []domain.Feature

	// Matched counts world countries that received a value.
	Matched int

	// Unmatched lists resolved codes with no polygon in the dataset.
	Unmatched []string

	// Duplicates counts rows dropped because an earlier row already
	// claimed the same code.
	Duplicates int
}

// Join left-joins world countries against resolved rows on ISO3. Every
// world country appears exactly once; rows whose code matches no polygon
// are reported in Unmatched and dropped.
func Join(w *World, rows []domain.ResolvedRow) JoinResult {
	values := make(map[string]float64, len(rows))
	order := make([]string, 0, len(rows))
	var res JoinResult
	for _, r := range rows {
		if _, seen := values[r.ISO3]; seen {
			res.Duplicates++
			continue
		}
		values[r.ISO3] = r.Value
		order = append(order, r.ISO3)
	}

	matched := make(map[string]bool, len(values))
	res.Features = make([]domain.Feature, 0, len(w.Countries))
	for _, c := range w.Countries {
		f := domain.Feature{
			ISO3:     c.ISO3,
			Name:     c.Name,
			Geometry: c.Geometry,
			Value:    math.NaN(),
		}
		if c.ISO3 != "" {
			if v, ok := values[c.ISO3]; ok {
				f.Value = v
				if !matched[c.ISO3] {
					matched[c.ISO3] = true
					res.Matched++
				}
			}
		}
		res.Features = append(res.Features, f)
	}

	for _, code := range order {
		if !matched[code] {
			res.Unmatched = append(res.Unmatched, code)
		}
	}
	return res
}
