package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// priceMultipliers are local abbreviations for thousand/million amounts,
// checked longest-suffix first so "ribu" wins over a bare trailing token.
var priceMultipliers = []struct {
	suffix string
	factor float64
}{
	{"juta", 1e6},
	{"jt", 1e6},
	{"ribu", 1e3},
	{"rb", 1e3},
	{"k", 1e3},
}

var thousandsDotRe = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
var thousandsCommaRe = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)

// ParsePrice parses a raw price string into a non-negative amount. Currency
// symbols and thousands separators are stripped; local abbreviations for
// thousands ("15k", "15rb") and millions ("2.5jt") are expanded. Returns
// ok=false on unparsable input instead of an error.
func ParsePrice(raw string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}

	for _, cur := range []string{"rp.", "rp", "idr", "usd", "$"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, cur))
	}

	mult := 1.0
	for _, m := range priceMultipliers {
		if strings.HasSuffix(s, m.suffix) {
			mult = m.factor
			s = strings.TrimSpace(strings.TrimSuffix(s, m.suffix))
			break
		}
	}

	v, ok := parseDecimal(strings.ReplaceAll(s, " ", ""))
	if !ok || v < 0 {
		return 0, false
	}
	return v * mult, true
}

// parseDecimal handles the separator ambiguity between Indonesian
// ("10.000,50"), US ("10,000.50") and plain notations.
func parseDecimal(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasDot && hasComma:
		// the rightmost separator is the decimal point
		if strings.LastIndex(s, ".") > strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}
	case hasDot:
		if thousandsDotRe.MatchString(s) {
			s = strings.ReplaceAll(s, ".", "")
		}
	case hasComma:
		if thousandsCommaRe.MatchString(s) {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
