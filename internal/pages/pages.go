// Package pages renders a batch of interactive maps from a TOML manifest,
// one HTML page per entry. Entries with missing inputs are skipped with a
// warning so one bad row does not sink the batch.
package pages

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/geo-labs/choromap/internal/cliconfig"
	"github.com/geo-labs/choromap/internal/domain"
	"github.com/geo-labs/choromap/internal/pipeline"
)

// Manifest describes the batch: where inputs live, where pages go and one
// entry per map.
type Manifest struct {
	InputsDir string  `toml:"inputs_dir"`
	PagesDir  string  `toml:"pages_dir"`
	Maps      []Entry `toml:"maps"`
}

// Entry is one map in the manifest. CSV is required; ID defaults to the
// CSV basename without extension.
type Entry struct {
	ID         string `toml:"id"`
	CSV        string `toml:"csv"`
	ValueCol   string `toml:"value_col"`
	ISOCol     string `toml:"iso_col"`
	CountryCol string `toml:"country_col"`
	Colormap   string `toml:"colormap"`
	Title      string `toml:"title"`
}

// Summary reports the batch outcome.
type Summary struct {
	Generated int
	Total     int
}

// LoadManifest reads and parses the TOML manifest. A missing manifest is a
// usage error.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, fmt.Errorf("%w: manifest not found: %s", domain.ErrUsage, path)
		}
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := toml.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.InputsDir == "" {
		m.InputsDir = "inputs"
	}
	if m.PagesDir == "" {
		m.PagesDir = "pages"
	}
	return m, nil
}

// Generate renders every manifest entry with the interactive renderer
// enabled. Entries without a CSV or whose CSV is missing are skipped with a
// warning; other failures count against the summary but do not abort the
// batch.
func Generate(ctx context.Context, m Manifest, base cliconfig.Config) Summary {
	log := pipeline.Logger()
	sum := Summary{Total: len(m.Maps)}

	for _, entry := range m.Maps {
		if entry.CSV == "" {
			log.Warn().Str("id", entry.ID).Msg("manifest entry has no csv, skipping")
			continue
		}
		csvPath := filepath.Join(m.InputsDir, entry.CSV)
		if _, err := os.Stat(csvPath); err != nil {
			log.Warn().Str("path", csvPath).Msg("csv not found, skipping")
			continue
		}

		id := entry.ID
		if id == "" {
			id = strings.TrimSuffix(entry.CSV, filepath.Ext(entry.CSV))
		}

		cfg := base
		cfg.CSVPath = csvPath
		cfg.OutputPrefix = filepath.Join(m.PagesDir, id)
		cfg.Interactive = true
		if entry.ValueCol != "" {
			cfg.ValueCol = entry.ValueCol
		}
		if entry.ISOCol != "" {
			cfg.ISOCol = entry.ISOCol
		}
		if entry.CountryCol != "" {
			cfg.CountryCol = entry.CountryCol
		}
		if entry.Colormap != "" {
			cfg.Colormap = entry.Colormap
		}
		if entry.Title != "" {
			cfg.Title = entry.Title
		}

		log.Info().Str("id", id).Msg("generating map")
		if _, err := pipeline.Run(ctx, cfg); err != nil {
			log.Error().Err(err).Str("id", id).Msg("map generation failed")
			continue
		}
		sum.Generated++
	}

	log.Info().Int("generated", sum.Generated).Int("total", sum.Total).Str("dir", m.PagesDir).
		Msg("finished generating pages")
	return sum
}
