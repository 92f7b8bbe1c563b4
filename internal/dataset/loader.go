package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/geo-labs/choromap/internal/domain"
)

// Options select which CSV columns feed the pipeline. Empty fields fall back
// to auto-detection over common column names.
type Options struct {
	// CountryCol is the free-text country name column.
	CountryCol string

	// ValueCol is the numeric value column.
	ValueCol string

	// ISOCol is the ISO code column. When present in the header it is
	// preferred over CountryCol: codes are faster and more reliable than
	// name lookups.
	ISOCol string
}

// Table is a loaded CSV reduced to the columns the pipeline needs.
type Table struct {
	// Rows holds one entry per CSV record, in file order.
	Rows []domain.Row

	// ValueCol is the resolved value column name, used in titles and logs.
	ValueCol string

	// ISOCoded reports that identifiers came from an ISO column and are
	// used verbatim instead of being looked up by name.
	ISOCoded bool
}

// Column name candidates for auto-detection, matched case-insensitively.
var (
	countryCandidates = []string{"country", "country_name", "name", "nation"}
	valueCandidates   = []string{"value", "val", "metric", "score"}
	isoCandidates     = []string{"iso", "iso3", "iso_a3", "country_iso", "country_iso3", "country_iso_a3", "country_iso_code"}
)

// Load reads the CSV at path and extracts identifier and value columns
// according to opts. A missing file maps to domain.ErrMissingInput; an
// undetectable value column maps to domain.ErrUsage.
func Load(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingInput, path)
		}
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrUsage, path)
	}

	header := records[0]
	dc, dv, di := detectColumns(header)
	countryCol := opts.CountryCol
	if countryCol == "" {
		countryCol = dc
	}
	valueCol := opts.ValueCol
	if valueCol == "" {
		valueCol = dv
	}
	isoCol := opts.ISOCol
	if isoCol == "" {
		isoCol = di
	}

	valueIdx := columnIndex(header, valueCol)
	if valueIdx < 0 {
		return nil, fmt.Errorf("%w: value column not found; available columns: %s",
			domain.ErrUsage, strings.Join(header, ", "))
	}

	// Prefer the ISO column when one exists in the header. A configured ISO
	// column that is absent falls back to the detected candidate, then to
	// country names, so a codes-only CSV still loads under default config.
	idIdx := columnIndex(header, isoCol)
	if idIdx < 0 {
		idIdx = columnIndex(header, di)
	}
	isoCoded := idIdx >= 0
	if !isoCoded {
		idIdx = columnIndex(header, countryCol)
		if idIdx < 0 {
			return nil, fmt.Errorf("%w: country column not found; available columns: %s",
				domain.ErrUsage, strings.Join(header, ", "))
		}
	}

	t := &Table{
		ValueCol: header[valueIdx],
		ISOCoded: isoCoded,
	}
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		row := domain.Row{Value: nan()}
		if idIdx < len(rec) {
			row.Identifier = strings.TrimSpace(rec[idIdx])
		}
		if valueIdx < len(rec) {
			if v, ok := ParseNumeric(rec[valueIdx]); ok {
				row.Value = v
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// detectColumns scans the header for common country, value and ISO column
// names and returns the first match of each kind.
func detectColumns(header []string) (country, value, iso string) {
	for _, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		if country == "" && contains(countryCandidates, l) {
			country = h
		}
		if value == "" && contains(valueCandidates, l) {
			value = h
		}
		if iso == "" && contains(isoCandidates, l) {
			iso = h
		}
	}
	return country, value, iso
}

// columnIndex finds name in the header, preferring an exact match and
// falling back to a case-insensitive one. Returns -1 when absent or empty.
func columnIndex(header []string, name string) int {
	if name == "" {
		return -1
	}
	for i, h := range header {
		if h == name {
			return i
		}
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
