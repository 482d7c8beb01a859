package normalize

import "regexp"

// patternRule rewrites a multi-word idiom into one canonical hyphenated
// term before tokenization. Rules with an Indonesian source phrase are
// marked so the caller can count a substitution as a language signal.
type patternRule struct {
	re          *regexp.Regexp
	replacement string
	indonesian  bool
}

// patternRules are applied in order; later rules operate on the already
// substituted text, so more specific idioms must come first.
var patternRules = []patternRule{
	{regexp.MustCompile(`\bbawang merah\b`), "shallot", true},
	{regexp.MustCompile(`\bbawang putih\b`), "garlic", true},
	{regexp.MustCompile(`\bbawang bombay\b`), "onion", true},
	{regexp.MustCompile(`\bdaun bawang\b`), "spring-onion", true},
	{regexp.MustCompile(`\bcabe rawit\b`), "birdseye-chili", true},
	{regexp.MustCompile(`\bcabai rawit\b`), "birdseye-chili", true},
	{regexp.MustCompile(`\bcabe merah\b`), "red-chili", true},
	{regexp.MustCompile(`\bcabai merah\b`), "red-chili", true},
	{regexp.MustCompile(`\bkacang panjang\b`), "long-bean", true},
	{regexp.MustCompile(`\bkacang tanah\b`), "peanut", true},
	{regexp.MustCompile(`\bubi jalar\b`), "sweet-potato", true},
	{regexp.MustCompile(`\bjagung manis\b`), "sweet-corn", true},
	{regexp.MustCompile(`\bair mineral\b`), "mineral-water", true},
	{regexp.MustCompile(`\bminyak goreng\b`), "cooking-oil", true},
	{regexp.MustCompile(`\bgula pasir\b`), "sugar", true},
	{regexp.MustCompile(`\bgula merah\b`), "palm-sugar", true},
	{regexp.MustCompile(`\btelur ayam\b`), "egg", true},
	{regexp.MustCompile(`\btelur puyuh\b`), "quail-egg", true},
	{regexp.MustCompile(`\bdada ayam\b`), "chicken-breast", true},
	{regexp.MustCompile(`\bpaha ayam\b`), "chicken-thigh", true},
	{regexp.MustCompile(`\bdaging sapi\b`), "beef", true},
	{regexp.MustCompile(`\bspring onion\b`), "spring-onion", false},
	{regexp.MustCompile(`\bgreen onion\b`), "spring-onion", false},
	{regexp.MustCompile(`\bsweet corn\b`), "sweet-corn", false},
	{regexp.MustCompile(`\bsweet potato\b`), "sweet-potato", false},
	{regexp.MustCompile(`\blong bean\b`), "long-bean", false},
	{regexp.MustCompile(`\bgreen bean\b`), "green-bean", false},
	{regexp.MustCompile(`\bbell pepper\b`), "bell-pepper", false},
	{regexp.MustCompile(`\bmineral water\b`), "mineral-water", false},
	{regexp.MustCompile(`\bcooking oil\b`), "cooking-oil", false},
}

// ApplyPatterns rewrites known multi-word idioms in a cleaned name and
// reports whether any Indonesian-source rule fired. Order matters: each
// rule sees the output of the previous one.
func ApplyPatterns(s string) (string, bool) {
	indonesian := false
	for _, r := range patternRules {
		out := r.re.ReplaceAllString(s, r.replacement)
		if out != s && r.indonesian {
			indonesian = true
		}
		s = out
	}
	return s, indonesian
}
