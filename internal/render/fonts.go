package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var parseTitleFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// titleFace returns a Go Regular face at the given point size for the
// render DPI.
func titleFace(points float64, dpi float64) (font.Face, error) {
	f, err := parseTitleFont()
	if err != nil {
		return nil, fmt.Errorf("parse title font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    points,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build title face: %w", err)
	}
	return face, nil
}
