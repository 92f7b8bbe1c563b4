// Package cliconfig holds the CLI configuration for choromap and its
// layering: defaults, then the TOML config file, then CHOROMAP_* environment
// variables, then explicitly set flags.
package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/geo-labs/choromap/internal/domain"
)

// Default column names. The ISO column is preferred over country names when
// it exists in the CSV header.
const (
	DefaultValueCol = "value"
	DefaultISOCol   = "country_ISO"
)

// DefaultColormap is used for both the static and interactive renderers.
const DefaultColormap = "RdYlGn"

// Config holds CLI configuration for choromap.
type Config struct {
	// CSVPath is the input file for a single render invocation.
	CSVPath string

	CountryCol string
	ValueCol   string
	ISOCol     string

	Colormap string
	// Title may contain a {value_col} placeholder.
	Title        string
	OutputPrefix string
	MissingColor string

	// WorldPath overrides the world geometry dataset location.
	WorldPath string
	// CacheDir holds downloaded geometry; empty means the user cache dir.
	CacheDir string

	Width  int
	Height int

	DownloadTimeout time.Duration

	Interactive bool
	Watch       bool

	// InputsDir and OutputsDir are used by the run wrapper, which maps a
	// bare map name onto <inputs>/<name>.csv and <outputs>/<name>.*.
	InputsDir  string
	OutputsDir string

	// WatermarkPath is overlaid on static maps when the file exists.
	WatermarkPath string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ValueCol:        DefaultValueCol,
		ISOCol:          DefaultISOCol,
		Colormap:        DefaultColormap,
		OutputPrefix:    "outputs/choropleth",
		MissingColor:    "lightgrey",
		Width:           2100,
		Height:          1200,
		DownloadTimeout: 60 * time.Second,
		InputsDir:       "inputs",
		OutputsDir:      "outputs",
		WatermarkPath:   "assets/watermark.png",
	}
}

// Validate checks the configuration and sets derived defaults.
func (c *Config) Validate() error {
	if c.CSVPath == "" {
		return fmt.Errorf("%w: input csv is required", domain.ErrUsage)
	}
	if c.ValueCol == "" {
		c.ValueCol = DefaultValueCol
	}
	if c.Colormap == "" {
		c.Colormap = DefaultColormap
	}
	if c.OutputPrefix == "" {
		return fmt.Errorf("%w: output-prefix must not be empty", domain.ErrInvalidConfig)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive", domain.ErrInvalidConfig)
	}
	if c.DownloadTimeout <= 0 {
		c.DownloadTimeout = 60 * time.Second
	}
	return nil
}

// ExpandTitle substitutes the {value_col} placeholder with the resolved
// value column name.
func (c Config) ExpandTitle(valueCol string) string {
	return strings.ReplaceAll(c.Title, "{value_col}", valueCol)
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
