package cliconfig

import (
	"errors"
	"testing"

	"github.com/geo-labs/choromap/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "defaults with csv are valid",
			mutate: func(c *Config) { c.CSVPath = "inputs/data.csv" },
		},
		{
			name:    "missing csv is a usage error",
			mutate:  func(c *Config) {},
			wantErr: domain.ErrUsage,
		},
		{
			name: "zero width rejected",
			mutate: func(c *Config) {
				c.CSVPath = "x.csv"
				c.Width = 0
			},
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name: "empty output prefix rejected",
			mutate: func(c *Config) {
				c.CSVPath = "x.csv"
				c.OutputPrefix = ""
			},
			wantErr: domain.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_FillsDerivedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CSVPath = "x.csv"
	cfg.ValueCol = ""
	cfg.Colormap = ""
	cfg.DownloadTimeout = 0

	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.ValueCol != DefaultValueCol {
		t.Fatalf("expected default value column, got %q", cfg.ValueCol)
	}
	if cfg.Colormap != DefaultColormap {
		t.Fatalf("expected default colormap, got %q", cfg.Colormap)
	}
	if cfg.DownloadTimeout <= 0 {
		t.Fatal("expected derived download timeout")
	}
}

func TestExpandTitle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "Tracks per country ({value_col})"

	if got := cfg.ExpandTitle("track_km"); got != "Tracks per country (track_km)" {
		t.Fatalf("unexpected title: %q", got)
	}

	cfg.Title = ""
	if got := cfg.ExpandTitle("track_km"); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
}
