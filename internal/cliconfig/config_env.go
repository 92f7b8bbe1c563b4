package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (CHOROMAP_*). These override file config but are overridden by flags
// (checked via the changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("country-col", os.Getenv("CHOROMAP_COUNTRY_COL"), &cfg.CountryCol)
	s.setString("value-col", os.Getenv("CHOROMAP_VALUE_COL"), &cfg.ValueCol)
	s.setString("iso-col", os.Getenv("CHOROMAP_ISO_COL"), &cfg.ISOCol)
	s.setString("colormap", os.Getenv("CHOROMAP_COLORMAP"), &cfg.Colormap)
	s.setString("title", os.Getenv("CHOROMAP_TITLE"), &cfg.Title)
	s.setString("output-prefix", os.Getenv("CHOROMAP_OUTPUT_PREFIX"), &cfg.OutputPrefix)
	s.setString("missing-color", os.Getenv("CHOROMAP_MISSING_COLOR"), &cfg.MissingColor)
	s.setString("world", os.Getenv("CHOROMAP_WORLD_PATH"), &cfg.WorldPath)
	s.setString("cache-dir", os.Getenv("CHOROMAP_CACHE_DIR"), &cfg.CacheDir)
	s.setString("inputs-dir", os.Getenv("CHOROMAP_INPUTS_DIR"), &cfg.InputsDir)
	s.setString("outputs-dir", os.Getenv("CHOROMAP_OUTPUTS_DIR"), &cfg.OutputsDir)
	s.setString("watermark", os.Getenv("CHOROMAP_WATERMARK_PATH"), &cfg.WatermarkPath)

	if err := s.setIntFromString("width", os.Getenv("CHOROMAP_WIDTH"), &cfg.Width); err != nil {
		return err
	}
	if err := s.setIntFromString("height", os.Getenv("CHOROMAP_HEIGHT"), &cfg.Height); err != nil {
		return err
	}

	if err := s.setDuration("download-timeout", os.Getenv("CHOROMAP_DOWNLOAD_TIMEOUT"), &cfg.DownloadTimeout); err != nil {
		return err
	}

	s.setBoolFromString("interactive", os.Getenv("CHOROMAP_INTERACTIVE"), &cfg.Interactive)

	return nil
}
