package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericRe matches a plain decimal number with an optional thousands
// suffix, e.g. "3M", "364.5K", "42".
var numericRe = regexp.MustCompile(`^([0-9]*\.?[0-9]+)\s*([kKmM]?)$`)

var digitsRe = regexp.MustCompile(`[^0-9.]`)

// ParseNumeric coerces a CSV cell to a float64. Besides plain floats it
// accepts humanized forms seen in public datasets: "3M", "130.2K", "< 1",
// thousands separators and thin spaces. Returns false for empty or
// unparseable cells; callers keep such rows with a NaN value.
func ParseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	// "< 1" means "less than one"; plot it as one.
	s = strings.TrimSpace(strings.TrimPrefix(s, "<"))

	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(n) {
		return n, true
	}

	if m := numericRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		switch strings.ToUpper(m[2]) {
		case "K":
			n *= 1_000
		case "M":
			n *= 1_000_000
		}
		return n, true
	}

	// Fallback: strip everything that is not a digit or dot.
	digits := digitsRe.ReplaceAllString(s, "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func nan() float64 { return math.NaN() }
