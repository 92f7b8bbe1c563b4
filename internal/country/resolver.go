// Package country resolves CSV country identifiers to canonical ISO 3166-1
// alpha-3 codes. Declared ISO codes are used verbatim (case-normalized,
// alpha-2 upgraded to alpha-3); free-text names are normalized and looked up
// against the ISO reference table with a small alias layer for spellings the
// table does not know.
package country

import (
	"regexp"
	"strings"

	"github.com/biter777/countries"
)

// Resolve maps a country identifier to an ISO3 code. isoCoded declares that
// the identifier came from an ISO column and must not be treated as a name.
// The second return is false when the identifier cannot be resolved; such
// rows are skipped by the caller.
func Resolve(identifier string, isoCoded bool) (string, bool) {
	if isoCoded {
		return CleanISO(identifier)
	}
	return FromName(identifier)
}

// CleanISO canonicalizes an ISO code cell: alpha-3 codes are upper-cased
// verbatim, alpha-2 codes are upgraded via the reference table, anything
// else is a skip.
func CleanISO(code string) (string, bool) {
	s := strings.TrimSpace(code)
	switch {
	case len(s) == 3 && isAlpha(s):
		return strings.ToUpper(s), true
	case len(s) == 2 && isAlpha(s):
		c := countries.ByName(strings.ToUpper(s))
		if c == countries.Unknown {
			return "", false
		}
		return c.Alpha3(), true
	default:
		return "", false
	}
}

// FromName resolves a free-text country name to an ISO3 code. Strings that
// already look like alpha-3 codes pass through unchanged, matching how
// mixed name/code columns appear in public datasets.
func FromName(name string) (string, bool) {
	s := strings.TrimSpace(name)
	if s == "" {
		return "", false
	}
	if len(s) == 3 && isAlpha(s) {
		return strings.ToUpper(s), true
	}

	if code, ok := nameAliases[normalizeName(s)]; ok {
		return code, true
	}
	c := countries.ByName(s)
	if c == countries.Unknown {
		return "", false
	}
	return c.Alpha3(), true
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9 ]+`)
var spacesRe = regexp.MustCompile(`\s+`)

// normalizeName lowers, strips punctuation and collapses whitespace so
// dataset spellings like "Korea, South" and "korea south" compare equal.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("'", "", `"`, "", ",", "", ".", "").Replace(s)
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// nameAliases maps normalized dataset spellings straight to alpha-3 codes
// for names the ISO reference table spells differently. Extend as unmatched
// spellings show up in inputs.
var nameAliases = map[string]string{
	"dr congo":                     "COD",
	"democratic republic of congo": "COD",
	"congo":                        "COG",
	"republic of the congo":        "COG",
	"ivory coast":                  "CIV",
	"cote divoire":                 "CIV",
	"korea south":                  "KOR",
	"south korea":                  "KOR",
	"korea north":                  "PRK",
	"north korea":                  "PRK",
	"russia":                       "RUS",
	"bolivia":                      "BOL",
	"venezuela":                    "VEN",
	"iran":                         "IRN",
	"syria":                        "SYR",
	"laos":                         "LAO",
	"vietnam":                      "VNM",
	"tanzania":                     "TZA",
	"moldova":                      "MDA",
	"cape verde":                   "CPV",
	"swaziland":                    "SWZ",
	"east timor":                   "TLS",
	"burma":                        "MMR",
	"czech republic":               "CZE",
	"czechia":                      "CZE",
	"macedonia":                    "MKD",
	"north macedonia":              "MKD",
	"the gambia":                   "GMB",
	"vatican city":                 "VAT",
	"taiwan":                       "TWN",
	"united states":                "USA",
	"uk":                           "GBR",
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
