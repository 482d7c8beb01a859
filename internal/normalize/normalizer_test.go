package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suplio/internal/domain"
	"suplio/internal/normalize"
)

// fixtureDict is a small in-memory dictionary for normalizer tests.
type fixtureDict struct {
	languages map[string]domain.DictionaryEntry
	units     map[string][2]interface{}
}

func newFixtureDict() *fixtureDict {
	return &fixtureDict{
		languages: map[string]domain.DictionaryEntry{
			"wortel":  {Source: "wortel", Target: "carrot", Category: "vegetable"},
			"kentang": {Source: "kentang", Target: "potato", Category: "vegetable"},
			"segar":   {Source: "segar", Target: "fresh"},
			"merah":   {Source: "merah", Target: "red"},
			"besar":   {Source: "besar", Target: "large"},
			"ayam":    {Source: "ayam", Target: "chicken", Category: "meat"},
			"telur":   {Source: "telur", Target: "egg", Category: "dairy-eggs"},
			"manis":   {Source: "manis", Target: "sweet"},
			"lokal":   {Source: "lokal", Target: "local"},
			"impor":   {Source: "impor", Target: "imported"},
		},
		units: map[string][2]interface{}{
			"ikat":  {"bunch", 1.0},
			"lusin": {"dozen", 12.0},
			"ons":   {"g", 100.0},
		},
	}
}

func (d *fixtureDict) LookupLanguage(word string) (string, bool) {
	e, ok := d.languages[word]
	return e.Target, ok
}

func (d *fixtureDict) LookupLanguageEntry(word string) (domain.DictionaryEntry, bool) {
	e, ok := d.languages[word]
	return e, ok
}

func (d *fixtureDict) LookupUnit(unit string) (string, float64, bool) {
	u, ok := d.units[unit]
	if !ok {
		return "", 0, false
	}
	return u[0].(string), u[1].(float64), true
}

func TestNormalize_IndonesianNameWithSize(t *testing.T) {
	n := normalize.NewNormalizer(newFixtureDict())

	product, lang := n.Normalize(domain.RawProductObservation{
		Name:       "Wortel Segar 500g",
		Price:      "15k",
		Confidence: 0.9,
	}, "IDR")

	assert.Equal(t, "id", lang)
	assert.Equal(t, "Wortel Segar 500g", product.OriginalName)
	assert.Equal(t, "carrot fresh 500g", product.StandardName)
	assert.Equal(t, "vegetable", product.Category)
	assert.Equal(t, 15000.0, product.Price)
	assert.True(t, product.PriceKnown)
	assert.Equal(t, "IDR", product.Currency)
	assert.Equal(t, 500.0, product.Quantity)
	assert.Equal(t, "g", product.Unit)
	assert.True(t, product.UnitResolved)
}

func TestNormalize_MisspelledEnglishName(t *testing.T) {
	n := normalize.NewNormalizer(newFixtureDict())

	product, lang := n.Normalize(domain.RawProductObservation{
		Name:  "Poteto",
		Price: "39k",
		Unit:  "kg",
	}, "IDR")

	assert.Equal(t, "en", lang)
	assert.Equal(t, "potato", product.StandardName)
	assert.Equal(t, 39000.0, product.Price)
	assert.Equal(t, "kg", product.Unit)
	assert.True(t, product.UnitResolved)
}

func TestNormalize_PatternIdiom(t *testing.T) {
	n := normalize.NewNormalizer(newFixtureDict())

	product, _ := n.Normalize(domain.RawProductObservation{
		Name: "Bawang Merah Lokal",
		Unit: "kg",
	}, "IDR")

	assert.Equal(t, "shallot", product.StandardName)
	assert.Equal(t, "local", product.Origin)
}

func TestNormalize_IdiomOnlyNameDetectedIndonesian(t *testing.T) {
	n := normalize.NewNormalizer(newFixtureDict())

	// "Bawang Merah" is handled entirely by the idiom table, so no
	// per-token dictionary translation ever fires.
	product, lang := n.Normalize(domain.RawProductObservation{
		Name: "Bawang Merah",
		Unit: "kg",
	}, "IDR")

	assert.Equal(t, "id", lang)
	assert.Equal(t, "shallot", product.StandardName)
}

func TestNormalize_IdiomConvergesAcrossLanguages(t *testing.T) {
	n := normalize.NewNormalizer(newFixtureDict())

	indonesian, idLang := n.Normalize(domain.RawProductObservation{
		Name: "Jagung Manis",
		Unit: "kg",
	}, "IDR")
	english, enLang := n.Normalize(domain.RawProductObservation{
		Name: "Sweet Corn",
		Unit: "kg",
	}, "IDR")

	assert.Equal(t, "sweet-corn", indonesian.StandardName)
	assert.Equal(t, english.StandardName, indonesian.StandardName)
	assert.Equal(t, "id", idLang)
	assert.Equal(t, "en", enLang)
}

func TestNormalize_BrandAndGrade(t *testing.T) {
	n := normalize.NewNormalizer(newFixtureDict())

	product, _ := n.Normalize(domain.RawProductObservation{
		Name: "Bimoli Minyak Goreng Premium 2L",
		Unit: "btl",
	}, "IDR")

	assert.Equal(t, "Bimoli", product.Brand)
	assert.Equal(t, "premium", product.Grade)
	assert.Equal(t, "cooking-oil bimoli 2l", product.StandardName)
	assert.Equal(t, 2.0, product.Quantity)
	assert.Equal(t, "bottle", product.Unit)
}

func TestNormalize_DictionaryUnit(t *testing.T) {
	n := normalize.NewNormalizer(newFixtureDict())

	product, _ := n.Normalize(domain.RawProductObservation{
		Name:  "Telur Ayam",
		Price: "28000",
		Unit:  "lusin",
	}, "IDR")

	assert.Equal(t, "egg", product.StandardName)
	assert.Equal(t, "dozen", product.Unit)
	assert.True(t, product.UnitResolved)
	assert.Equal(t, 12.0, product.UnitMultiplier)
}

func TestNormalize_UnknownUnitFlaggedNotErased(t *testing.T) {
	n := normalize.NewNormalizer(newFixtureDict())

	product, _ := n.Normalize(domain.RawProductObservation{
		Name: "Kentang",
		Unit: "karung jumbo",
	}, "IDR")

	assert.False(t, product.UnitResolved)
	assert.Equal(t, "karung jumbo", product.Unit)
}

func TestNormalize_MissingPrice(t *testing.T) {
	n := normalize.NewNormalizer(newFixtureDict())

	product, _ := n.Normalize(domain.RawProductObservation{
		Name: "Wortel",
		Unit: "kg",
	}, "IDR")

	assert.False(t, product.PriceKnown)
	assert.Zero(t, product.Price)
}

func TestNormalize_ExplicitCategoryWins(t *testing.T) {
	n := normalize.NewNormalizer(newFixtureDict())

	product, _ := n.Normalize(domain.RawProductObservation{
		Name:     "Wortel",
		Category: "Organic Produce",
	}, "IDR")

	assert.Equal(t, "organic produce", product.Category)
}

func TestNormalize_ConfidenceBounds(t *testing.T) {
	n := normalize.NewNormalizer(newFixtureDict())

	names := []string{
		"Wortel Segar",
		"xzqw unknowable gibberish product name entry row nine ten",
		"a",
		"",
	}
	for _, name := range names {
		product, _ := n.Normalize(domain.RawProductObservation{Name: name}, "IDR")
		require.GreaterOrEqual(t, product.Confidence, 0.1, "name %q", name)
		require.LessOrEqual(t, product.Confidence, 1.0, "name %q", name)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	n := normalize.NewNormalizer(newFixtureDict())
	raw := domain.RawProductObservation{Name: "Wortel Besar Segar Merah", Price: "Rp 12.500", Unit: "ikat"}

	first, _ := n.Normalize(raw, "IDR")
	second, _ := n.Normalize(raw, "IDR")
	assert.Equal(t, first, second)
}
