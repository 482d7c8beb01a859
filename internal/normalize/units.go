package normalize

import (
	"regexp"
	"strings"
)

// UnitLookup resolves a unit token through the dictionary store. It may be
// nil when no dictionary is available.
type UnitLookup func(unit string) (target string, factor float64, ok bool)

// unitAliases is the static alias table checked before the dictionary.
// Canonical units map to themselves so standardization is idempotent.
var unitAliases = map[string]string{
	"kg": "kg", "kgs": "kg", "kilo": "kg", "kilogram": "kg", "kilograms": "kg",
	"g": "g", "gr": "g", "gram": "g", "grams": "g", "grm": "g",
	"mg": "mg", "milligram": "mg",
	"l": "l", "lt": "l", "ltr": "l", "liter": "l", "litre": "l", "liters": "l", "litres": "l",
	"ml": "ml", "cc": "ml", "milliliter": "ml", "millilitre": "ml",
	"pcs": "pcs", "pc": "pcs", "piece": "pcs", "pieces": "pcs", "unit": "pcs", "units": "pcs", "ea": "pcs", "each": "pcs",
	"pack": "pack", "pk": "pack", "pax": "pack", "packet": "pack", "packets": "pack",
	"box": "box", "bx": "box", "boxes": "box", "ctn": "box", "carton": "box",
	"bunch": "bunch", "bunches": "bunch",
	"bottle": "bottle", "btl": "bottle", "bottles": "bottle",
	"sack": "sack", "sacks": "sack", "bag": "sack", "bags": "sack",
	"can": "can", "cans": "can", "tin": "can", "tins": "can",
	"dozen": "dozen", "dz": "dozen", "doz": "dozen",
	"tray": "tray", "trays": "tray",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
}

// CanonicalUnits is the closed set every normalized product draws its unit
// from. Unresolved units stay outside this set and are flagged, not erased.
var CanonicalUnits = map[string]bool{
	"kg": true, "g": true, "mg": true, "l": true, "ml": true,
	"pcs": true, "pack": true, "box": true, "bunch": true, "bottle": true,
	"sack": true, "can": true, "dozen": true, "tray": true,
	"oz": true, "lb": true,
}

var compoundUnitRe = regexp.MustCompile(`^\d+(?:[.,]\d+)?\s*([a-z]+)$`)

// StandardizeUnit normalizes a unit token to its canonical form. It strips
// punctuation, consults the static alias table, then the dictionary, then
// falls back to pattern extraction from a compound token ("5kg" -> "kg").
// Unresolved units are returned unchanged with ok=false; that is a warning
// signal, never an error.
func StandardizeUnit(unit string, lookup UnitLookup) (string, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(unit))
	cleaned = strings.Trim(cleaned, "./\\")
	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, ".", ""))
	if cleaned == "" {
		return "", false
	}

	if canonical, ok := unitAliases[cleaned]; ok {
		return canonical, true
	}
	if lookup != nil {
		if target, _, ok := lookup(cleaned); ok {
			// dictionary targets are themselves canonical aliases
			if canonical, ok := unitAliases[target]; ok {
				return canonical, true
			}
			return target, true
		}
	}
	if m := compoundUnitRe.FindStringSubmatch(cleaned); m != nil {
		if canonical, ok := unitAliases[m[1]]; ok {
			return canonical, true
		}
		if lookup != nil {
			if target, _, ok := lookup(m[1]); ok {
				return target, true
			}
		}
	}
	return unit, false
}

// UnitConversionFactor returns the multiplier into the canonical unit for
// a source unit token (e.g. "lusin" -> 12, "ons" -> 100). Defaults to 1.
func UnitConversionFactor(unit string, lookup UnitLookup) float64 {
	if lookup == nil {
		return 1
	}
	cleaned := strings.ToLower(strings.TrimSpace(unit))
	if _, factor, ok := lookup(cleaned); ok && factor > 0 {
		return factor
	}
	return 1
}
