package normalize

// misspellings maps common misspelled product tokens to their corrected
// form. Curated from observed supplier price lists; lookups are token-level.
var misspellings = map[string]string{
	"poteto":   "potato",
	"potatoe":  "potato",
	"potatos":  "potato",
	"tomatoe":  "tomato",
	"tomatos":  "tomato",
	"carot":    "carrot",
	"carrort":  "carrot",
	"brocolli": "broccoli",
	"brocoli":  "broccoli",
	"cabage":   "cabbage",
	"cabagge":  "cabbage",
	"chiken":   "chicken",
	"chikken":  "chicken",
	"onoin":    "onion",
	"garlick":  "garlic",
	"cucumbar": "cucumber",
	"avocado":  "avocado",
	"advokat":  "avocado",
	"bannana":  "banana",
	"banan":    "banana",
	"oren":     "orange",
	"mangga2":  "mango",
	"wartel":   "wortel",
	"kentanng": "kentang",
	"spinnach": "spinach",
	"egs":      "egg",
	"noodles":  "noodle",
	"shrimps":  "shrimp",
}

// FixMisspelling repairs a single token against the misspelling map. When
// the token itself is unknown, a simple plural-strip heuristic drops a
// trailing "s" and retries with the singular.
func FixMisspelling(token string) string {
	if fixed, ok := misspellings[token]; ok {
		return fixed
	}
	if len(token) > 3 && token[len(token)-1] == 's' {
		if fixed, ok := misspellings[token[:len(token)-1]]; ok {
			return fixed
		}
	}
	return token
}

// FixMisspellings repairs every token in place and returns the slice.
func FixMisspellings(tokens []string) []string {
	for i, t := range tokens {
		tokens[i] = FixMisspelling(t)
	}
	return tokens
}
