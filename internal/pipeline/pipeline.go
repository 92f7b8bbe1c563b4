// Package pipeline wires the choropleth stages together: CSV load, country
// resolution, geometry join, color scaling and rendering. One call per
// invocation, a single forward pass with no shared state across runs.
package pipeline

import (
	"context"
	"fmt"
	"net/http"

	"github.com/geo-labs/choromap/internal/cliconfig"
	"github.com/geo-labs/choromap/internal/country"
	"github.com/geo-labs/choromap/internal/dataset"
	"github.com/geo-labs/choromap/internal/domain"
	"github.com/geo-labs/choromap/internal/geo"
	"github.com/geo-labs/choromap/internal/render"
	"github.com/geo-labs/choromap/internal/scale"
)

// Result summarizes one pipeline run.
type Result struct {
	PNGPath  string
	HTMLPath string

	ValueCol  string
	InputRows int
	Resolved  int
	Skipped   int
	Matched   int
}

// Run executes the whole pipeline once and writes the output artifacts.
func Run(ctx context.Context, cfg cliconfig.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tbl, err := dataset.Load(cfg.CSVPath, dataset.Options{
		CountryCol: cfg.CountryCol,
		ValueCol:   cfg.ValueCol,
		ISOCol:     cfg.ISOCol,
	})
	if err != nil {
		return nil, err
	}

	resolved := make([]domain.ResolvedRow, 0, len(tbl.Rows))
	skipped := 0
	for _, row := range tbl.Rows {
		code, ok := country.Resolve(row.Identifier, tbl.ISOCoded)
		if !ok {
			skipped++
			logger.Warn().Str("identifier", row.Identifier).Msg("could not resolve country, skipping row")
			continue
		}
		resolved = append(resolved, domain.ResolvedRow{ISO3: code, Value: row.Value})
	}
	if skipped > 0 {
		logger.Warn().Int("rows", skipped).Msg("rows without an ISO3 code were skipped")
	}

	world, err := geo.LoadWorld(ctx, geo.LoadOptions{
		Path:     cfg.WorldPath,
		CacheDir: cfg.CacheDir,
		Client:   &http.Client{Timeout: cfg.DownloadTimeout},
	})
	if err != nil {
		return nil, err
	}

	join := geo.Join(world, resolved)
	for _, code := range join.Unmatched {
		logger.Warn().Str("iso3", code).Msg("no polygon for code, dropping row")
	}
	if join.Duplicates > 0 {
		logger.Warn().Int("rows", join.Duplicates).Msg("duplicate ISO3 rows ignored")
	}

	sc, hasScale := scale.FromFeatures(join.Features)
	grad, err := scale.Colormap(cfg.Colormap)
	if err != nil {
		return nil, err
	}
	missing, err := scale.ParseColor(cfg.MissingColor)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("input_rows", len(tbl.Rows)).
		Int("resolved", len(resolved)).
		Int("world_countries", len(world.Countries)).
		Int("matched", join.Matched).
		Str("value_col", tbl.ValueCol).
		Msg("joined data onto world geometry")
	if hasScale {
		logger.Info().Float64("min", sc.Min).Float64("max", sc.Max).Msg("color scale domain")
	}

	res := &Result{
		ValueCol:  tbl.ValueCol,
		InputRows: len(tbl.Rows),
		Resolved:  len(resolved),
		Skipped:   skipped,
		Matched:   join.Matched,
	}

	res.PNGPath = cfg.OutputPrefix + ".png"
	err = render.WriteStaticPNG(res.PNGPath, join.Features, render.StaticOptions{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Gradient:      grad,
		Scale:         sc,
		HasScale:      hasScale,
		Missing:       missing,
		Title:         cfg.ExpandTitle(tbl.ValueCol),
		WatermarkPath: cfg.WatermarkPath,
	})
	if err != nil {
		return nil, fmt.Errorf("write static map: %w", err)
	}
	logger.Info().Str("path", res.PNGPath).Msg("saved static map")

	if cfg.Interactive {
		res.HTMLPath = cfg.OutputPrefix + ".html"
		err = render.WriteInteractiveHTML(res.HTMLPath, join.Features, render.InteractiveOptions{
			Gradient:   grad,
			Scale:      sc,
			HasScale:   hasScale,
			Missing:    missing,
			LegendName: tbl.ValueCol,
			Title:      cfg.ExpandTitle(tbl.ValueCol),
		})
		if err != nil {
			return nil, fmt.Errorf("write interactive map: %w", err)
		}
		logger.Info().Str("path", res.HTMLPath).Msg("saved interactive map")
	}

	return res, nil
}
