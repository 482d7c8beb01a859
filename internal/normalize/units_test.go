package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"suplio/internal/normalize"
)

func dictLookup(unit string) (string, float64, bool) {
	switch unit {
	case "ikat":
		return "bunch", 1, true
	case "lusin":
		return "dozen", 12, true
	case "ons":
		return "g", 100, true
	case "butir":
		return "pcs", 1, true
	}
	return "", 0, false
}

func TestStandardizeUnit_Aliases(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Kg", "kg"},
		{"kgs", "kg"},
		{"kilo", "kg"},
		{"gr", "g"},
		{"Ltr", "l"},
		{"pc", "pcs"},
		{"ea", "pcs"},
		{"ctn", "box"},
		{"dz", "dozen"},
	}
	for _, tc := range cases {
		got, ok := normalize.StandardizeUnit(tc.in, nil)
		assert.True(t, ok, "unit %q", tc.in)
		assert.Equal(t, tc.want, got, "unit %q", tc.in)
	}
}

func TestStandardizeUnit_Idempotent(t *testing.T) {
	for unit := range normalize.CanonicalUnits {
		got, ok := normalize.StandardizeUnit(unit, nil)
		assert.True(t, ok, "unit %q", unit)
		assert.Equal(t, unit, got, "unit %q", unit)
	}
}

func TestStandardizeUnit_DictionaryFallback(t *testing.T) {
	got, ok := normalize.StandardizeUnit("ikat", dictLookup)
	assert.True(t, ok)
	assert.Equal(t, "bunch", got)

	got, ok = normalize.StandardizeUnit("Lusin", dictLookup)
	assert.True(t, ok)
	assert.Equal(t, "dozen", got)
}

func TestStandardizeUnit_CompoundToken(t *testing.T) {
	got, ok := normalize.StandardizeUnit("5kg", nil)
	assert.True(t, ok)
	assert.Equal(t, "kg", got)

	got, ok = normalize.StandardizeUnit("250 gr", nil)
	assert.True(t, ok)
	assert.Equal(t, "g", got)
}

func TestStandardizeUnit_UnresolvedKeptVerbatim(t *testing.T) {
	got, ok := normalize.StandardizeUnit("karung besar", dictLookup)
	assert.False(t, ok)
	assert.Equal(t, "karung besar", got)
}

func TestUnitConversionFactor(t *testing.T) {
	assert.Equal(t, 12.0, normalize.UnitConversionFactor("lusin", dictLookup))
	assert.Equal(t, 100.0, normalize.UnitConversionFactor("ons", dictLookup))
	assert.Equal(t, 1.0, normalize.UnitConversionFactor("kg", dictLookup))
	assert.Equal(t, 1.0, normalize.UnitConversionFactor("kg", nil))
}
