package normalize

import (
	"sort"
	"strings"

	"suplio/internal/domain"
)

// Dictionary is the lookup surface the normalizer needs from the
// dictionary store. Tests inject fixture implementations.
type Dictionary interface {
	LookupLanguage(word string) (string, bool)
	LookupLanguageEntry(word string) (domain.DictionaryEntry, bool)
	LookupUnit(unit string) (string, float64, bool)
}

// coreProducts is the fixed vocabulary of main product words. The first
// token found here becomes the main product; with no hit, the first
// remaining token is used as a fallback.
var coreProducts = map[string]bool{
	"carrot": true, "potato": true, "tomato": true, "onion": true,
	"shallot": true, "garlic": true, "chili": true, "red-chili": true,
	"birdseye-chili": true, "cabbage": true, "spinach": true,
	"water-spinach": true, "lettuce": true, "mustard-green": true,
	"broccoli": true, "cucumber": true, "corn": true, "sweet-corn": true,
	"eggplant": true, "green-bean": true, "long-bean": true, "ginger": true,
	"turmeric": true, "mushroom": true, "apple": true, "banana": true,
	"orange": true, "mango": true, "watermelon": true, "papaya": true,
	"pineapple": true, "grape": true, "avocado": true, "chicken": true,
	"chicken-breast": true, "chicken-thigh": true, "beef": true,
	"goat": true, "fish": true, "shrimp": true, "squid": true, "egg": true,
	"quail-egg": true, "milk": true, "cheese": true, "rice": true,
	"sugar": true, "palm-sugar": true, "salt": true, "oil": true,
	"cooking-oil": true, "flour": true, "wheat": true, "noodle": true,
	"tofu": true, "tempeh": true, "bread": true, "water": true,
	"mineral-water": true, "peanut": true, "sweet-potato": true,
	"spring-onion": true, "bell-pepper": true, "pepper": true,
	"lime": true, "lemon": true,
}

// knownDescriptors are recognized attribute words; they count toward
// language purity without being main products.
var knownDescriptors = map[string]bool{
	"fresh": true, "large": true, "small": true, "red": true, "white": true,
	"green": true, "yellow": true, "sweet": true, "fried": true,
	"organic": true, "frozen": true, "dried": true, "cut": true,
	"fillet": true,
}

var gradeWords = map[string]bool{"premium": true, "super": true}
var originWords = map[string]bool{"local": true, "imported": true}

// Normalizer composes the canonicalization functions into one
// deterministic pipeline.
type Normalizer struct {
	dict Dictionary
}

// NewNormalizer creates a Normalizer over the given dictionary.
func NewNormalizer(dict Dictionary) *Normalizer {
	return &Normalizer{dict: dict}
}

// Normalize turns one raw observation into its canonical form and reports
// the detected language of the original name. Confidence is recomputed
// from linguistic clarity signals and bounded to [0.1, 1.0].
func (n *Normalizer) Normalize(raw domain.RawProductObservation, currency string) (domain.NormalizedProduct, string) {
	cleaned := CleanName(raw.Name)

	tokens := FixMisspellings(Tokenize(cleaned))
	repaired := strings.Join(tokens, " ")

	substituted, idIdiom := ApplyPatterns(repaired)

	remainder, size, hasSize := ExtractSize(substituted)

	tokens, brand := ExtractBrand(Tokenize(remainder))

	// per-token translation; unknown tokens pass through unchanged
	translatedCount := 0
	recognized := 0
	category := ""
	for i, tok := range tokens {
		if coreProducts[tok] || knownDescriptors[tok] || gradeWords[tok] || originWords[tok] {
			recognized++
			continue
		}
		entry, ok := n.dict.LookupLanguageEntry(tok)
		if !ok {
			continue
		}
		tokens[i] = entry.Target
		translatedCount++
		recognized++
		if category == "" && entry.Category != "" {
			category = entry.Category
		}
	}

	main, descriptors, grade, origin := splitProduct(tokens)

	standardName := assembleName(main, brand, descriptors, size, hasSize)

	unitSource := strings.TrimSpace(raw.Unit)
	if unitSource == "" && hasSize {
		unitSource = size.Unit
	}
	unit, unitResolved := StandardizeUnit(unitSource, n.dict.LookupUnit)
	multiplier := UnitConversionFactor(unitSource, n.dict.LookupUnit)

	price, priceKnown := ParsePrice(raw.Price.String())

	quantity := 1.0
	if hasSize {
		quantity = size.Value
	}

	if raw.Category != "" {
		category = strings.ToLower(strings.TrimSpace(raw.Category))
	}

	language := "en"
	if translatedCount > 0 || idIdiom {
		language = "id"
	}

	product := domain.NormalizedProduct{
		OriginalName:   raw.Name,
		StandardName:   standardName,
		LocalName:      cleaned,
		Category:       category,
		Price:          price,
		PriceKnown:     priceKnown,
		Currency:       currency,
		Quantity:       quantity,
		Unit:           unit,
		UnitResolved:   unitResolved,
		UnitMultiplier: multiplier,
		Brand:          brand,
		Grade:          grade,
		Origin:         origin,
		Attributes:     descriptors,
		Confidence:     confidence(tokens, recognized, main),
	}
	return product, language
}

// splitProduct separates tokens into the main product, sorted deduplicated
// descriptors, and any grade/origin attributes.
func splitProduct(tokens []string) (main string, descriptors []string, grade, origin string) {
	seen := map[string]bool{}
	for _, tok := range tokens {
		switch {
		case main == "" && coreProducts[tok]:
			main = tok
		case gradeWords[tok] && grade == "":
			grade = tok
		case originWords[tok] && origin == "":
			origin = tok
		default:
			if !seen[tok] {
				seen[tok] = true
				descriptors = append(descriptors, tok)
			}
		}
	}
	if main == "" && len(descriptors) > 0 {
		// fallback: first unmatched token is the main product
		main = descriptors[0]
		descriptors = descriptors[1:]
	}
	sort.Strings(descriptors)
	return main, descriptors, grade, origin
}

// assembleName rebuilds the canonical name as
// "main brand descriptors... size".
func assembleName(main, brand string, descriptors []string, size Size, hasSize bool) string {
	parts := make([]string, 0, len(descriptors)+3)
	if main != "" {
		parts = append(parts, main)
	}
	if brand != "" {
		parts = append(parts, strings.ToLower(brand))
	}
	parts = append(parts, descriptors...)
	if hasSize {
		parts = append(parts, size.Raw)
	}
	return strings.Join(parts, " ")
}

// confidence scores linguistic clarity: language purity ratio, presence of
// a known product word, and token-count outliers. Monotonic in all three
// signals, bounded to [0.1, 1.0].
func confidence(tokens []string, recognized int, main string) float64 {
	total := len(tokens)
	if total == 0 {
		return 0.1
	}

	purity := float64(recognized) / float64(total)

	coreHit := 0.0
	if coreProducts[main] {
		coreHit = 1.0
	}

	lengthScore := 1.0
	switch {
	case total == 1 || (total >= 5 && total <= 8):
		lengthScore = 0.6
	case total > 8:
		lengthScore = 0.3
	}

	c := 0.15 + 0.45*purity + 0.25*coreHit + 0.15*lengthScore
	if c < 0.1 {
		c = 0.1
	}
	if c > 1.0 {
		c = 1.0
	}
	return c
}
