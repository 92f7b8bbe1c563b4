package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/geo-labs/choromap/internal/domain"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_ISOColumnPreferred(t *testing.T) {
	p := writeCSV(t, "country,country_ISO,value\nFrance,FRA,10\nNorway,NOR,20\n")

	tbl, err := Load(p, Options{ISOCol: "country_ISO", ValueCol: "value"})
	if err != nil {
		t.Fatal(err)
	}
	if !tbl.ISOCoded {
		t.Fatal("expected ISO-coded identifiers")
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0].Identifier != "FRA" || tbl.Rows[0].Value != 10 {
		t.Fatalf("unexpected first row: %+v", tbl.Rows[0])
	}
	if tbl.ValueCol != "value" {
		t.Fatalf("unexpected value column: %q", tbl.ValueCol)
	}
}

func TestLoad_FallsBackToCountryNames(t *testing.T) {
	// The configured ISO column is absent from the header, so identifiers
	// must come from the detected country column.
	p := writeCSV(t, "nation,score\nGermany,5\nJapan,7\n")

	tbl, err := Load(p, Options{ISOCol: "country_ISO"})
	if err != nil {
		t.Fatal(err)
	}
	if tbl.ISOCoded {
		t.Fatal("expected name identifiers, got ISO-coded")
	}
	if tbl.Rows[0].Identifier != "Germany" {
		t.Fatalf("unexpected identifier: %q", tbl.Rows[0].Identifier)
	}
	if tbl.ValueCol != "score" {
		t.Fatalf("expected detected value column 'score', got %q", tbl.ValueCol)
	}
}

func TestLoad_DetectedISOColumnUnderDefaults(t *testing.T) {
	// A codes-only CSV with no country-name column must still load when the
	// configured ISO column name is absent: detection finds the ISO column.
	p := writeCSV(t, "iso,value\nFRA,1\nNOR,2\n")

	tbl, err := Load(p, Options{ISOCol: "country_ISO", ValueCol: "value"})
	if err != nil {
		t.Fatal(err)
	}
	if !tbl.ISOCoded {
		t.Fatal("expected ISO-coded identifiers")
	}
	if len(tbl.Rows) != 2 || tbl.Rows[0].Identifier != "FRA" || tbl.Rows[1].Identifier != "NOR" {
		t.Fatalf("unexpected rows: %+v", tbl.Rows)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	if !errors.Is(err, domain.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
}

func TestLoad_UndetectableValueColumn(t *testing.T) {
	p := writeCSV(t, "country,population\nFrance,67000000\n")

	_, err := Load(p, Options{})
	if !errors.Is(err, domain.ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestLoad_UnparseableValueKeepsRow(t *testing.T) {
	p := writeCSV(t, "country,value\nFrance,abc\nNorway,3\n")

	tbl, err := Load(p, Options{ValueCol: "value"})
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
	if !math.IsNaN(tbl.Rows[0].Value) {
		t.Fatalf("expected NaN for unparseable value, got %v", tbl.Rows[0].Value)
	}
	if tbl.Rows[1].Value != 3 {
		t.Fatalf("expected 3, got %v", tbl.Rows[1].Value)
	}
}

func TestDetectColumns(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		country string
		value   string
		iso     string
	}{
		{
			name:    "common names",
			header:  []string{"Country", "Value"},
			country: "Country",
			value:   "Value",
		},
		{
			name:   "iso variants",
			header: []string{"ISO_A3", "metric"},
			value:  "metric",
			iso:    "ISO_A3",
		},
		{
			name:    "first candidate wins",
			header:  []string{"nation", "name", "val", "score"},
			country: "nation",
			value:   "val",
		},
		{
			name:   "nothing recognized",
			header: []string{"foo", "bar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, v, i := detectColumns(tt.header)
			if c != tt.country || v != tt.value || i != tt.iso {
				t.Fatalf("detectColumns(%v) = (%q, %q, %q), want (%q, %q, %q)",
					tt.header, c, v, i, tt.country, tt.value, tt.iso)
			}
		})
	}
}
