package main

import (
	"fmt"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/geo-labs/choromap/internal/cliconfig"
	"github.com/geo-labs/choromap/internal/domain"
	"github.com/geo-labs/choromap/internal/pages"
	"github.com/geo-labs/choromap/internal/pipeline"
)

const helpBanner = `
   ____ _   _  ___  ____   ___  __  __    _    ____
  / ___| | | |/ _ \|  _ \ / _ \|  \/  |  / \  |  _ \
 | |   | |_| | | | | |_) | | | | |\/| | / _ \ | |_) |
 | |___|  _  | |_| |  _ <| |_| | |  | |/ ___ \|  __/
  \____|_| |_|\___/|_| \_\\___/|_|  |_/_/   \_\_|
`

const helpDescription = `
Render choropleth world maps from CSV data.

Highlights:
  - Auto-detects country and value columns; accepts names or ISO codes.
  - Joins against the Natural Earth country polygons (bundled path, local
    cache, or one-time download).
  - Writes a static PNG and, optionally, an interactive Leaflet HTML map.
  - Configure via file ($HOME/.choromap/config.toml), env (CHOROMAP_*), or flags.
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  choromap render data/visitors.csv --title "Visitors by country"
  choromap render data/scores.csv --colormap viridis --interactive
  choromap run visitors
  choromap pages --manifest maps.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// newRootCmd builds the command tree. All state lives in the returned
// command's closures so tests can execute it in isolation.
func newRootCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var manifestPath string

	log := cliconfig.Logger()

	// Load config file (default $HOME/.choromap/config.toml), then env,
	// with flags winning via the changed set.
	applyLayers := func(cmd *cobra.Command) error {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return err
			}
		}

		return cliconfig.ApplyEnvConfig(&cfg, changed)
	}

	root := &cobra.Command{
		Use:           "choromap",
		Short:         "Render choropleth world maps from CSV data",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	renderCmd := &cobra.Command{
		Use:   "render <csv>",
		Short: "Render a choropleth from a CSV file",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: render expects exactly one CSV path", domain.ErrUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyLayers(cmd); err != nil {
				return err
			}
			cfg.CSVPath = args[0]
			if err := cfg.Validate(); err != nil {
				return err
			}
			log.Info().Interface("config", cfg).Msg("configuration")

			if cfg.Watch {
				return pipeline.Watch(cmd.Context(), cfg)
			}
			_, err := pipeline.Run(cmd.Context(), cfg)
			return err
		},
	}

	runCmd := &cobra.Command{
		Use:   "run <name>",
		Short: "Render inputs/<name>.csv to outputs/<name>.png (and .html)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: run expects exactly one map name", domain.ErrUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyLayers(cmd); err != nil {
				return err
			}
			name := args[0]
			cfg.CSVPath = filepath.Join(cfg.InputsDir, name+".csv")
			if !cliconfig.FileExists(cfg.CSVPath) {
				return fmt.Errorf("%w: %s", domain.ErrMissingInput, cfg.CSVPath)
			}
			cfg.OutputPrefix = filepath.Join(cfg.OutputsDir, name)
			if err := cfg.Validate(); err != nil {
				return err
			}
			log.Info().Interface("config", cfg).Msg("configuration")

			if cfg.Watch {
				return pipeline.Watch(cmd.Context(), cfg)
			}
			_, err := pipeline.Run(cmd.Context(), cfg)
			return err
		},
	}

	pagesCmd := &cobra.Command{
		Use:   "pages",
		Short: "Render every map listed in a TOML manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyLayers(cmd); err != nil {
				return err
			}
			m, err := pages.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			pages.Generate(cmd.Context(), m, cfg)
			return nil
		},
	}
	pagesCmd.Flags().StringVar(&manifestPath, "manifest", "maps.toml", "path to the maps manifest")

	// Shared flags
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.choromap/config.toml)")
	root.PersistentFlags().StringVar(&cfg.CountryCol, "country-col", cfg.CountryCol, "CSV column holding country names")
	root.PersistentFlags().StringVar(&cfg.ValueCol, "value-col", cfg.ValueCol, "CSV column holding the numeric value")
	root.PersistentFlags().StringVar(&cfg.ISOCol, "iso-col", cfg.ISOCol, "CSV column holding ISO country codes (skips name resolution)")
	root.PersistentFlags().StringVar(&cfg.Colormap, "colormap", cfg.Colormap, "colormap name (RdYlGn, YlOrRd, viridis, ...)")
	root.PersistentFlags().StringVar(&cfg.Title, "title", cfg.Title, "map title ({value_col} expands to the value column name)")
	root.PersistentFlags().StringVar(&cfg.OutputPrefix, "output-prefix", cfg.OutputPrefix, "output path prefix for .png/.html artifacts")
	root.PersistentFlags().StringVar(&cfg.MissingColor, "missing-color", cfg.MissingColor, "fill color for countries without data")
	root.PersistentFlags().StringVar(&cfg.WorldPath, "world", cfg.WorldPath, "path to a Natural Earth countries GeoJSON file")
	root.PersistentFlags().StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "directory for the downloaded world dataset")
	root.PersistentFlags().IntVar(&cfg.Width, "width", cfg.Width, "static map width in pixels")
	root.PersistentFlags().IntVar(&cfg.Height, "height", cfg.Height, "static map height in pixels")
	root.PersistentFlags().DurationVar(&cfg.DownloadTimeout, "download-timeout", cfg.DownloadTimeout, "timeout for the world dataset download")
	root.PersistentFlags().BoolVar(&cfg.Interactive, "interactive", cfg.Interactive, "also write an interactive HTML map")
	root.PersistentFlags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-render whenever the input CSV changes")
	root.PersistentFlags().StringVar(&cfg.InputsDir, "inputs-dir", cfg.InputsDir, "directory searched by the run command")
	root.PersistentFlags().StringVar(&cfg.OutputsDir, "outputs-dir", cfg.OutputsDir, "directory written by the run command")
	root.PersistentFlags().StringVar(&cfg.WatermarkPath, "watermark", cfg.WatermarkPath, "PNG overlaid on the static map (skipped if absent)")

	root.AddCommand(renderCmd, runCmd, pagesCmd)
	return root
}
