package normalize

// knownBrands is the fixed brand list used for membership tests. Keys are
// cleaned tokens; values are the display form kept in the brand field.
var knownBrands = map[string]string{
	"indofood":  "Indofood",
	"indomie":   "Indomie",
	"sedaap":    "Sedaap",
	"aqua":      "Aqua",
	"abc":       "ABC",
	"bango":     "Bango",
	"royco":     "Royco",
	"maggi":     "Maggi",
	"nestle":    "Nestle",
	"ultra":     "Ultra",
	"frisian":   "Frisian Flag",
	"bimoli":    "Bimoli",
	"tropical":  "Tropical",
	"filma":     "Filma",
	"sania":     "Sania",
	"rosebrand": "Rose Brand",
	"segitiga":  "Segitiga Biru",
	"bogasari":  "Bogasari",
	"gulaku":    "Gulaku",
	"dolpin":    "Dolpin",
	"sasa":      "Sasa",
	"ajinomoto": "Ajinomoto",
	"masako":    "Masako",
}

// ExtractBrand removes the first known brand token from a token list and
// returns the remaining tokens plus the brand display name. The brand is
// retained as a separate field rather than being dropped.
func ExtractBrand(tokens []string) ([]string, string) {
	for i, t := range tokens {
		display, ok := knownBrands[t]
		if !ok || display == "" {
			continue
		}
		rest := make([]string, 0, len(tokens)-1)
		rest = append(rest, tokens[:i]...)
		rest = append(rest, tokens[i+1:]...)
		return rest, display
	}
	return tokens, ""
}
