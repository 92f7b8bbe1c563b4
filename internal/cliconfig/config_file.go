package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	CountryCol      string `toml:"country_col"`
	ValueCol        string `toml:"value_col"`
	ISOCol          string `toml:"iso_col"`
	Colormap        string `toml:"colormap"`
	Title           string `toml:"title"`
	OutputPrefix    string `toml:"output_prefix"`
	MissingColor    string `toml:"missing_color"`
	WorldPath       string `toml:"world_path"`
	CacheDir        string `toml:"cache_dir"`
	Width           int    `toml:"width"`
	Height          int    `toml:"height"`
	DownloadTimeout string `toml:"download_timeout"`
	Interactive     *bool  `toml:"interactive"`
	InputsDir       string `toml:"inputs_dir"`
	OutputsDir      string `toml:"outputs_dir"`
	WatermarkPath   string `toml:"watermark_path"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path,
// ~/.choromap/config.toml when the home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".choromap", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("country-col", fc.CountryCol, &cfg.CountryCol)
	s.setString("value-col", fc.ValueCol, &cfg.ValueCol)
	s.setString("iso-col", fc.ISOCol, &cfg.ISOCol)
	s.setString("colormap", fc.Colormap, &cfg.Colormap)
	s.setString("title", fc.Title, &cfg.Title)
	s.setString("output-prefix", fc.OutputPrefix, &cfg.OutputPrefix)
	s.setString("missing-color", fc.MissingColor, &cfg.MissingColor)
	s.setString("world", fc.WorldPath, &cfg.WorldPath)
	s.setString("cache-dir", fc.CacheDir, &cfg.CacheDir)
	s.setString("inputs-dir", fc.InputsDir, &cfg.InputsDir)
	s.setString("outputs-dir", fc.OutputsDir, &cfg.OutputsDir)
	s.setString("watermark", fc.WatermarkPath, &cfg.WatermarkPath)

	s.setInt("width", fc.Width, &cfg.Width)
	s.setInt("height", fc.Height, &cfg.Height)

	if err := s.setDuration("download-timeout", fc.DownloadTimeout, &cfg.DownloadTimeout); err != nil {
		return err
	}

	s.setBool("interactive", fc.Interactive, &cfg.Interactive)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
