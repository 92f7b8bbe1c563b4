package render

import (
	"math"

	"github.com/geo-labs/choromap/internal/domain"
)

// projection maps lon/lat onto canvas pixels with an equirectangular
// projection stretched to the dataset bounds, so the map fills the canvas
// the way the original full-figure plots did.
type projection struct {
	minLon, maxLon float64
	minLat, maxLat float64
	width, height  float64
}

func newProjection(features []domain.Feature, width, height int) projection {
	p := projection{
		minLon: math.Inf(1), maxLon: math.Inf(-1),
		minLat: math.Inf(1), maxLat: math.Inf(-1),
		width: float64(width), height: float64(height),
	}
	for _, f := range features {
		if f.Geometry == nil {
			continue
		}
		b := f.Geometry.Bounds()
		p.minLon = math.Min(p.minLon, b.Min(0))
		p.maxLon = math.Max(p.maxLon, b.Max(0))
		p.minLat = math.Min(p.minLat, b.Min(1))
		p.maxLat = math.Max(p.maxLat, b.Max(1))
	}
	if math.IsInf(p.minLon, 1) {
		// No geometry at all; fall back to the whole globe.
		p.minLon, p.maxLon = -180, 180
		p.minLat, p.maxLat = -90, 90
	}
	return p
}

// point projects a lon/lat coordinate to canvas coordinates. Y grows
// downward, so latitude is flipped.
func (p projection) point(lon, lat float64) (x, y float64) {
	x = (lon - p.minLon) / (p.maxLon - p.minLon) * p.width
	y = (p.maxLat - lat) / (p.maxLat - p.minLat) * p.height
	return x, y
}
