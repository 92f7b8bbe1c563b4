// Package geo loads the Natural Earth admin-0 country dataset and joins
// resolved data rows against its polygons.
//
// The primary source is a local GeoJSON file; when no local copy exists the
// dataset is downloaded once into the user cache directory. Network failure
// during that fallback is fatal for the run.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/geo-labs/choromap/internal/domain"
)

// DefaultRemoteURL is the fallback source for the Natural Earth 110m
// admin-0 countries dataset when no local copy is found.
const DefaultRemoteURL = "https://raw.githubusercontent.com/nvkelso/natural-earth-vector/master/geojson/ne_110m_admin_0_countries.geojson"

// datasetFile is the filename used for local and cached copies.
const datasetFile = "ne_110m_admin_0_countries.geojson"

// HTTPClient abstracts HTTP operations for dependency injection.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Country is one world feature: a boundary polygon with its identifying
// properties. ISO3 is empty when the dataset carries a sentinel code
// (Natural Earth uses "-99" for some territories).
type Country struct {
	ISO3     string
	Name     string
	Geometry geom.T
}

// World is the loaded country boundary dataset, in file order.
type World struct {
	Countries []Country
}

// LoadOptions controls where the world dataset is looked up.
type LoadOptions struct {
	// Path is an explicit local dataset path. When set it must exist.
	Path string

	// CacheDir is where downloaded copies live. Defaults to the user
	// cache directory under "choromap".
	CacheDir string

	// RemoteURL overrides the fallback download source.
	RemoteURL string

	// Client is the HTTP client used for the fallback download.
	Client HTTPClient
}

// LoadWorld returns the world dataset from the first available source:
// the explicit path, ./data, the cache directory, then a one-shot remote
// download into the cache directory.
func LoadWorld(ctx context.Context, opts LoadOptions) (*World, error) {
	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", domain.ErrGeometryUnavailable, opts.Path, err)
		}
		return ParseWorld(data)
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		if d, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(d, "choromap")
		}
	}

	candidates := []string{filepath.Join("data", datasetFile)}
	if cacheDir != "" {
		candidates = append(candidates, filepath.Join(cacheDir, datasetFile))
	}
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		return ParseWorld(data)
	}

	if cacheDir == "" {
		return nil, fmt.Errorf("%w: no local dataset and no cache directory", domain.ErrGeometryUnavailable)
	}
	cached := filepath.Join(cacheDir, datasetFile)
	if err := download(ctx, opts, cached); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeometryUnavailable, err)
	}
	data, err := os.ReadFile(cached)
	if err != nil {
		return nil, fmt.Errorf("%w: read cached dataset: %v", domain.ErrGeometryUnavailable, err)
	}
	return ParseWorld(data)
}

// download fetches the remote dataset into path, removing partial files on
// failure so a later run retries cleanly.
func download(ctx context.Context, opts LoadOptions, path string) error {
	url := opts.RemoteURL
	if url == "" {
		url = DefaultRemoteURL
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP GET %s: status %d", url, resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(path) // best-effort cleanup of partial file
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing file %s: %w", path, err)
	}
	success = true
	return nil
}

// ParseWorld decodes a Natural Earth countries GeoJSON document.
func ParseWorld(data []byte) (*World, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode world geojson: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("world geojson has no features")
	}

	isoProp, err := chooseISOProperty(fc.Features)
	if err != nil {
		return nil, err
	}

	w := &World{Countries: make([]Country, 0, len(fc.Features))}
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		switch f.Geometry.(type) {
		case *geom.Polygon, *geom.MultiPolygon:
		default:
			continue
		}
		w.Countries = append(w.Countries, Country{
			ISO3:     normalizeISO(propString(f.Properties, isoProp)),
			Name:     featureName(f.Properties),
			Geometry: f.Geometry,
		})
	}
	return w, nil
}

// isoPropertyCandidates are the ISO-like property names Natural Earth has
// carried across releases, matched case-insensitively.
var isoPropertyCandidates = []string{"iso_a3", "iso3", "iso", "adm0_a3"}

// chooseISOProperty picks the candidate property containing the most valid
// alpha-3 codes. Some Natural Earth columns (ISO_A3 in particular) hold
// "-99" sentinels for disputed territories, so the raw name is not enough.
func chooseISOProperty(features []*geojson.Feature) (string, error) {
	scores := map[string]int{}
	names := map[string]string{}
	for _, f := range features {
		for key, val := range f.Properties {
			lower := strings.ToLower(key)
			ok := false
			for _, c := range isoPropertyCandidates {
				if lower == c {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
			names[lower] = key
			if s, isStr := val.(string); isStr && validAlpha3(s) {
				scores[lower]++
			}
		}
	}

	best, bestScore := "", 0
	for _, c := range isoPropertyCandidates {
		if scores[c] > bestScore {
			best, bestScore = c, scores[c]
		}
	}
	if best == "" {
		return "", fmt.Errorf("no ISO3-like property found in world dataset")
	}
	return names[best], nil
}

// featureName returns the display name property, trying the names Natural
// Earth has used across releases.
func featureName(props map[string]interface{}) string {
	for _, key := range []string{"ADMIN", "admin", "NAME", "name", "NAME_LONG"} {
		if s := propString(props, key); s != "" {
			return s
		}
	}
	return ""
}

func propString(props map[string]interface{}, key string) string {
	if props == nil {
		return ""
	}
	if s, ok := props[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// normalizeISO upper-cases a dataset code and drops sentinel values.
func normalizeISO(code string) string {
	if !validAlpha3(code) {
		return ""
	}
	return strings.ToUpper(code)
}

func validAlpha3(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 3 || s == "-99" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
