package geo

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/geo-labs/choromap/internal/domain"
)

// worldFixture has one polygon and one multipolygon country, plus a
// sentinel ISO_A3 so property scoring must prefer ADM0_A3.
const worldFixture = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"ADMIN": "France", "ISO_A3": "FRA", "ADM0_A3": "FRA"},
      "geometry": {"type": "Polygon", "coordinates": [[[0,40],[10,40],[10,50],[0,50],[0,40]]]}
    },
    {
      "type": "Feature",
      "properties": {"ADMIN": "Norway", "ISO_A3": "-99", "ADM0_A3": "NOR"},
      "geometry": {"type": "MultiPolygon", "coordinates": [[[[20,58],[30,58],[30,70],[20,70],[20,58]]]]}
    },
    {
      "type": "Feature",
      "properties": {"ADMIN": "Kosovo", "ISO_A3": "-99", "ADM0_A3": "-99"},
      "geometry": {"type": "Polygon", "coordinates": [[[20,42],[21,42],[21,43],[20,42]]]}
    }
  ]
}`

func TestParseWorld(t *testing.T) {
	w, err := ParseWorld([]byte(worldFixture))
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Countries) != 3 {
		t.Fatalf("expected 3 countries, got %d", len(w.Countries))
	}
	if w.Countries[0].ISO3 != "FRA" || w.Countries[0].Name != "France" {
		t.Fatalf("unexpected first country: %+v", w.Countries[0])
	}
	// ISO_A3 holds a sentinel for Norway; scoring must have picked ADM0_A3.
	if w.Countries[1].ISO3 != "NOR" {
		t.Fatalf("expected NOR from ADM0_A3, got %q", w.Countries[1].ISO3)
	}
	// Sentinel in every candidate column leaves the code empty.
	if w.Countries[2].ISO3 != "" {
		t.Fatalf("expected empty code for sentinel row, got %q", w.Countries[2].ISO3)
	}
}

func TestParseWorld_NoISOProperty(t *testing.T) {
	_, err := ParseWorld([]byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"ADMIN":"Nowhere"},
		 "geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`))
	if err == nil {
		t.Fatal("expected error for dataset without ISO property")
	}
}

func TestLoadWorld_ExplicitPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "world.geojson")
	if err := os.WriteFile(p, []byte(worldFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := LoadWorld(context.Background(), LoadOptions{Path: p})
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Countries) != 3 {
		t.Fatalf("expected 3 countries, got %d", len(w.Countries))
	}
}

func TestLoadWorld_DownloadsIntoCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.Write([]byte(worldFixture))
	}))
	t.Cleanup(srv.Close)

	cache := t.TempDir()
	w, err := LoadWorld(context.Background(), LoadOptions{CacheDir: cache, RemoteURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Countries) != 3 {
		t.Fatalf("expected 3 countries, got %d", len(w.Countries))
	}
	if _, err := os.Stat(filepath.Join(cache, datasetFile)); err != nil {
		t.Fatalf("expected cached dataset: %v", err)
	}

	// Second load must come from the cache, not the network.
	srv.Close()
	if _, err := LoadWorld(context.Background(), LoadOptions{CacheDir: cache, RemoteURL: srv.URL}); err != nil {
		t.Fatalf("expected cached load to succeed: %v", err)
	}
}

func TestLoadWorld_DownloadFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	cache := t.TempDir()
	_, err := LoadWorld(context.Background(), LoadOptions{CacheDir: cache, RemoteURL: srv.URL})
	if !errors.Is(err, domain.ErrGeometryUnavailable) {
		t.Fatalf("expected ErrGeometryUnavailable, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(cache, datasetFile)); statErr == nil {
		t.Fatal("expected no partial file in cache")
	}
}

func TestJoin(t *testing.T) {
	w, err := ParseWorld([]byte(worldFixture))
	if err != nil {
		t.Fatal(err)
	}

	rows := []domain.ResolvedRow{
		{ISO3: "FRA", Value: 10},
		{ISO3: "FRA", Value: 99}, // duplicate, dropped
		{ISO3: "XYZ", Value: 5},  // no polygon
	}
	res := Join(w, rows)

	if len(res.Features) != 3 {
		t.Fatalf("expected every world country once, got %d features", len(res.Features))
	}
	if res.Features[0].Value != 10 {
		t.Fatalf("expected first-wins join value 10, got %v", res.Features[0].Value)
	}
	if !math.IsNaN(res.Features[1].Value) {
		t.Fatalf("expected NaN for unmatched country, got %v", res.Features[1].Value)
	}
	if res.Matched != 1 {
		t.Fatalf("expected 1 matched, got %d", res.Matched)
	}
	if res.Duplicates != 1 {
		t.Fatalf("expected 1 duplicate, got %d", res.Duplicates)
	}
	if len(res.Unmatched) != 1 || res.Unmatched[0] != "XYZ" {
		t.Fatalf("unexpected unmatched list: %v", res.Unmatched)
	}
}
