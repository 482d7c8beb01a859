package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Size is a quantity token extracted from a product name, e.g. "500g".
type Size struct {
	Raw   string
	Value float64
	Unit  string
}

var sizeRe = regexp.MustCompile(`\b(\d+(?:[.,]\d+)?)\s*(kg|kgs|g|gr|gram|grams|mg|ml|l|lt|ltr|liter|litre|cc|oz|lb|lbs|pcs|pc|pack|pax)\b`)

// ExtractSize finds the first <number><unit> token in a cleaned name,
// removes it and returns the remainder together with the parsed size. The
// matched unit becomes a candidate canonical unit when the observation
// carried no explicit unit.
func ExtractSize(name string) (string, Size, bool) {
	loc := sizeRe.FindStringSubmatchIndex(name)
	if loc == nil {
		return name, Size{}, false
	}

	match := name[loc[0]:loc[1]]
	numText := strings.ReplaceAll(name[loc[2]:loc[3]], ",", ".")
	unit := name[loc[4]:loc[5]]

	value, err := strconv.ParseFloat(numText, 64)
	if err != nil {
		return name, Size{}, false
	}

	rest := name[:loc[0]] + name[loc[1]:]
	rest = strings.Join(strings.Fields(rest), " ")

	return rest, Size{
		Raw:   strings.Join(strings.Fields(match), ""),
		Value: value,
		Unit:  unit,
	}, true
}
