// Package choromap renders choropleth world maps from tabular country data.
//
// Example usage:
//
//	cfg := choromap.DefaultConfig()
//	cfg.CSVPath = "data/visitors.csv"
//	cfg.Interactive = true
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	res, err := choromap.Generate(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.PNGPath)
package choromap

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/geo-labs/choromap/internal/cliconfig"
	"github.com/geo-labs/choromap/internal/pipeline"
)

// Config holds the configuration for a single map render.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// Result reports the artifacts and row accounting of a render.
type Result = pipeline.Result

// Generate runs the full pipeline for one CSV: load, resolve countries,
// join against the world polygons, and write the PNG (and HTML when
// cfg.Interactive is set).
func Generate(ctx context.Context, cfg Config) (*Result, error) {
	return pipeline.Run(ctx, cfg)
}

// Watch renders once, then re-renders whenever the input CSV changes.
// It blocks until the context is cancelled.
func Watch(ctx context.Context, cfg Config) error {
	return pipeline.Watch(ctx, cfg)
}

// DefaultConfig returns a Config with sensible default values.
// At minimum, you must set CSVPath before calling Generate.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Logger returns the package-level zerolog logger used by the pipeline.
func Logger() zerolog.Logger {
	return pipeline.Logger()
}
