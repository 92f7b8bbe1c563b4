package scale

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mazznoer/colorgrad"
	"github.com/mazznoer/csscolorparser"
)

// Colormap names follow matplotlib so CSVs and manifests written for the
// original tooling keep working.
var colormaps = map[string]func() colorgrad.Gradient{
	"rdylgn":   colorgrad.RdYlGn,
	"ylorrd":   colorgrad.YlOrRd,
	"rdylbu":   colorgrad.RdYlBu,
	"rdbu":     colorgrad.RdBu,
	"brbg":     colorgrad.BrBG,
	"puor":     colorgrad.PuOr,
	"spectral": colorgrad.Spectral,
	"viridis":  colorgrad.Viridis,
	"plasma":   colorgrad.Plasma,
	"inferno":  colorgrad.Inferno,
	"magma":    colorgrad.Magma,
	"cividis":  colorgrad.Cividis,
	"turbo":    colorgrad.Turbo,
	"blues":    colorgrad.Blues,
	"greens":   colorgrad.Greens,
	"greys":    colorgrad.Greys,
	"oranges":  colorgrad.Oranges,
	"purples":  colorgrad.Purples,
	"reds":     colorgrad.Reds,
	"ylgn":     colorgrad.YlGn,
	"ylgnbu":   colorgrad.YlGnBu,
	"ylorbr":   colorgrad.YlOrBr,
	"orrd":     colorgrad.OrRd,
	"gnbu":     colorgrad.GnBu,
}

// Colormap returns the gradient for a matplotlib-style colormap name.
// Names are matched case-insensitively.
func Colormap(name string) (colorgrad.Gradient, error) {
	if f, ok := colormaps[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f(), nil
	}
	return colorgrad.Gradient{}, fmt.Errorf("unknown colormap %q (supported: %s)", name, strings.Join(ColormapNames(), ", "))
}

// ColormapNames returns the supported colormap names, sorted.
func ColormapNames() []string {
	names := make([]string, 0, len(colormaps))
	for n := range colormaps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseColor parses a CSS color (named, hex or rgb form), used for the
// missing-country fill.
func ParseColor(s string) (csscolorparser.Color, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return csscolorparser.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}
