package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				ValueCol:        "track_km",
				Colormap:        "viridis",
				Width:           1000,
				Height:          500,
				DownloadTimeout: "2m",
				Interactive:     &trueVal,
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				ValueCol:        "track_km",
				Colormap:        "viridis",
				Width:           1000,
				Height:          500,
				DownloadTimeout: 2 * time.Minute,
				Interactive:     true,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				Colormap: "viridis",
				ValueCol: "file-col",
			},
			changed: map[string]bool{"colormap": true},
			initial: Config{
				Colormap: "RdYlGn",
			},
			expected: Config{
				Colormap: "RdYlGn", // unchanged because flag was set
				ValueCol: "file-col",
			},
		},
		{
			name: "invalid duration returns error",
			fileConfig: FileConfig{
				DownloadTimeout: "not-a-duration",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cfg != tt.expected {
				t.Fatalf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	content := `
value_col = "track_km"
colormap = "YlOrRd"
width = 1400
interactive = true
download_timeout = "90s"
`
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFileConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if fc.ValueCol != "track_km" || fc.Colormap != "YlOrRd" || fc.Width != 1400 {
		t.Fatalf("unexpected file config: %+v", fc)
	}
	if fc.Interactive == nil || !*fc.Interactive {
		t.Fatal("expected interactive = true")
	}
	if fc.DownloadTimeout != "90s" {
		t.Fatalf("unexpected timeout: %q", fc.DownloadTimeout)
	}
}

func TestLoadFileConfig_MissingFile(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
