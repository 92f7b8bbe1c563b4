// Package render draws the joined country features: a static choropleth PNG
// via fogleman/gg and an optional self-contained interactive HTML map.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/mazznoer/colorgrad"
	"github.com/mazznoer/csscolorparser"
	"github.com/twpayne/go-geom"
	xdraw "golang.org/x/image/draw"

	"github.com/geo-labs/choromap/internal/domain"
	"github.com/geo-labs/choromap/internal/scale"
)

// Layout constants, mirroring the original 14x8 inch figure at 150 DPI with
// its lower-center inset colorbar.
const (
	DefaultWidth  = 2100
	DefaultHeight = 1200

	renderDPI       = 150
	titlePointSize  = 16
	colorbarWidthF  = 0.25  // fraction of canvas width
	colorbarHeightF = 0.025 // fraction of canvas height
	colorbarAlpha   = 0.7
	watermarkMaxF   = 0.30 // max watermark width as fraction of canvas
)

// StaticOptions configures the static renderer.
type StaticOptions struct {
	Width  int
	Height int

	// Gradient colors values within Scale's domain.
	Gradient colorgrad.Gradient

	// Scale is the shared color-scale domain; HasScale is false when no
	// feature carried a value, which suppresses the colorbar.
	Scale    scale.ColorScale
	HasScale bool

	// Missing fills countries without a value.
	Missing csscolorparser.Color

	// Title, already templated, drawn top center when non-empty.
	Title string

	// WatermarkPath is overlaid centered when the file exists.
	WatermarkPath string
}

// RenderStatic draws the choropleth onto a new canvas. Deterministic for
// identical features and options.
func RenderStatic(features []domain.Feature, opts StaticOptions) (image.Image, error) {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFillRule(gg.FillRuleEvenOdd)

	proj := newProjection(features, width, height)
	for _, f := range features {
		if f.Geometry == nil {
			continue
		}
		tracePath(dc, proj, f.Geometry)
		if f.HasValue() && opts.HasScale {
			c := opts.Gradient.At(opts.Scale.Normalize(f.Value))
			dc.SetRGB(c.R, c.G, c.B)
		} else {
			dc.SetRGB(opts.Missing.R, opts.Missing.G, opts.Missing.B)
		}
		dc.FillPreserve()
		dc.SetRGB(0.6, 0.6, 0.6)
		dc.SetLineWidth(0.5)
		dc.Stroke()
	}

	if opts.HasScale {
		drawColorbar(dc, opts, width, height)
	}
	if opts.Title != "" {
		if err := drawTitle(dc, opts.Title, width, height); err != nil {
			return nil, err
		}
	}
	if opts.WatermarkPath != "" {
		if err := drawWatermark(dc, opts.WatermarkPath, width, height); err != nil {
			return nil, err
		}
	}
	return dc.Image(), nil
}

// WriteStaticPNG renders and writes the PNG, creating parent directories.
func WriteStaticPNG(path string, features []domain.Feature, opts StaticOptions) error {
	img, err := RenderStatic(features, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// tracePath adds every ring of a Polygon or MultiPolygon to the current
// path. Interior rings become holes under the even-odd fill rule.
func tracePath(dc *gg.Context, proj projection, g geom.T) {
	switch t := g.(type) {
	case *geom.Polygon:
		for i := 0; i < t.NumLinearRings(); i++ {
			traceRing(dc, proj, t.LinearRing(i).Coords())
		}
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			tracePath(dc, proj, t.Polygon(i))
		}
	}
}

func traceRing(dc *gg.Context, proj projection, coords []geom.Coord) {
	for i, c := range coords {
		x, y := proj.point(c[0], c[1])
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

// drawColorbar overlays a semi-transparent horizontal colorbar near the
// lower center, unlabeled, the way the original inset axes sat over the
// bottom of the map.
func drawColorbar(dc *gg.Context, opts StaticOptions, width, height int) {
	barW := float64(width) * colorbarWidthF
	barH := float64(height) * colorbarHeightF
	barX := (float64(width) - barW) / 2
	barY := float64(height) - barH - float64(height)*0.03

	pad := barH * 0.3
	dc.SetRGBA(1, 1, 1, colorbarAlpha)
	dc.DrawRectangle(barX-pad, barY-pad, barW+2*pad, barH+2*pad)
	dc.Fill()

	steps := int(barW)
	if steps < 2 {
		steps = 2
	}
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		c := opts.Gradient.At(t)
		dc.SetRGBA(c.R, c.G, c.B, colorbarAlpha)
		dc.DrawRectangle(barX+float64(i), barY, 1, barH)
		dc.Fill()
	}

	dc.SetRGBA(0.4, 0.4, 0.4, colorbarAlpha)
	dc.SetLineWidth(1)
	dc.DrawRectangle(barX, barY, barW, barH)
	dc.Stroke()
}

func drawTitle(dc *gg.Context, title string, width, height int) error {
	face, err := titleFace(titlePointSize, renderDPI)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, float64(width)/2, float64(height)*0.035, 0.5, 0.5)
	return nil
}

// drawWatermark overlays the watermark image centered, scaled down to at
// most watermarkMaxF of the canvas width. A missing file is not an error.
func drawWatermark(dc *gg.Context, path string, width, height int) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	wm, err := gg.LoadImage(path)
	if err != nil {
		return fmt.Errorf("load watermark %s: %w", path, err)
	}

	bounds := wm.Bounds()
	maxW := int(float64(width) * watermarkMaxF)
	if bounds.Dx() > maxW {
		scaleF := float64(maxW) / float64(bounds.Dx())
		dst := image.NewRGBA(image.Rect(0, 0, maxW, int(float64(bounds.Dy())*scaleF)))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), wm, bounds, xdraw.Over, nil)
		wm = dst
	}
	dc.DrawImageAnchored(wm, width/2, height/2, 0.5, 0.5)
	return nil
}
