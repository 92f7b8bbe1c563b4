package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mazznoer/colorgrad"
	"github.com/mazznoer/csscolorparser"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/geo-labs/choromap/internal/domain"
	"github.com/geo-labs/choromap/internal/scale"
)

//go:embed templates/map.html
var templateFS embed.FS

var mapTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html"))

// InteractiveOptions configures the interactive HTML renderer.
type InteractiveOptions struct {
	// Gradient and Scale match the static renderer so both artifacts
	// encode the same colors.
	Gradient colorgrad.Gradient
	Scale    scale.ColorScale
	HasScale bool

	// Missing fills countries without a value.
	Missing csscolorparser.Color

	// LegendName labels the legend, usually the value column name.
	LegendName string

	// Title is shown as the document title when non-empty.
	Title string
}

// RenderInteractive writes a self-contained Leaflet HTML document with the
// joined features embedded as GeoJSON and per-country hover tooltips.
func RenderInteractive(w io.Writer, features []domain.Feature, opts InteractiveOptions) error {
	fc := geojson.FeatureCollection{}
	for _, f := range features {
		if f.Geometry == nil {
			continue
		}
		props := map[string]interface{}{
			"iso_a3": f.ISO3,
			"name":   f.Name,
		}
		if f.HasValue() && opts.HasScale {
			c := opts.Gradient.At(opts.Scale.Normalize(f.Value))
			props["value"] = f.Value
			props["fill"] = hexColor(c.R, c.G, c.B)
			props["tooltip"] = fmt.Sprintf("%s: %s", f.Name, formatValue(f.Value))
		} else {
			props["value"] = nil
			props["fill"] = hexColor(opts.Missing.R, opts.Missing.G, opts.Missing.B)
			props["tooltip"] = fmt.Sprintf("%s: no data", f.Name)
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   f.Geometry,
			Properties: props,
		})
	}

	payload, err := marshalTemplateJS(&fc)
	if err != nil {
		return fmt.Errorf("marshal features: %w", err)
	}

	title := opts.Title
	if title == "" {
		title = opts.LegendName
	}
	data := struct {
		Title       string
		LegendName  string
		HasScale    bool
		MinLabel    string
		MaxLabel    string
		GradientCSS template.CSS
		GeoJSON     template.JS
	}{
		Title:      title,
		LegendName: opts.LegendName,
		HasScale:   opts.HasScale,
		GeoJSON:    payload,
	}
	if opts.HasScale {
		data.MinLabel = formatValue(opts.Scale.Min)
		data.MaxLabel = formatValue(opts.Scale.Max)
		data.GradientCSS = template.CSS(gradientCSS(opts.Gradient))
	}
	return mapTemplate.Execute(w, data)
}

// WriteInteractiveHTML renders and writes the HTML document, creating
// parent directories.
func WriteInteractiveHTML(path string, features []domain.Feature, opts InteractiveOptions) error {
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
	if err := RenderInteractive(f, features, opts); err != nil {
		return err
	}
	return f.Close()
}

// marshalTemplateJS marshals a value for embedding in an inline script.
func marshalTemplateJS(v interface{}) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// gradientCSS renders the gradient as a CSS linear-gradient for the legend.
func gradientCSS(grad colorgrad.Gradient) string {
	const stops = 10
	parts := make([]string, 0, stops+1)
	for i := 0; i <= stops; i++ {
		t := float64(i) / stops
		c := grad.At(t)
		parts = append(parts, fmt.Sprintf("%s %d%%", hexColor(c.R, c.G, c.B), i*100/stops))
	}
	return "linear-gradient(to right, " + strings.Join(parts, ", ") + ")"
}

func hexColor(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(r), channel(g), channel(b))
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
