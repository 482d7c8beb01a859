package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"suplio/internal/normalize"
)

func TestParsePrice_LocalAbbreviations(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"15k", 15000},
		{"15rb", 15000},
		{"15 ribu", 15000},
		{"2.5jt", 2500000},
		{"1 juta", 1000000},
	}
	for _, tc := range cases {
		got, ok := normalize.ParsePrice(tc.raw)
		assert.True(t, ok, "raw %q", tc.raw)
		assert.Equal(t, tc.want, got, "raw %q", tc.raw)
	}
}

func TestParsePrice_CurrencyPrefixes(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"Rp 10.000", 10000},
		{"Rp. 10.000", 10000},
		{"IDR 25000", 25000},
		{"$ 3.50", 3.5},
	}
	for _, tc := range cases {
		got, ok := normalize.ParsePrice(tc.raw)
		assert.True(t, ok, "raw %q", tc.raw)
		assert.Equal(t, tc.want, got, "raw %q", tc.raw)
	}
}

func TestParsePrice_SeparatorAmbiguity(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"10.000", 10000},    // Indonesian thousands
		{"10,000", 10000},    // US thousands
		{"10.000,50", 10000.5},
		{"10,000.50", 10000.5},
		{"2.5", 2.5},   // plain decimal, not thousands
		{"39500", 39500},
	}
	for _, tc := range cases {
		got, ok := normalize.ParsePrice(tc.raw)
		assert.True(t, ok, "raw %q", tc.raw)
		assert.Equal(t, tc.want, got, "raw %q", tc.raw)
	}
}

func TestParsePrice_Unparsable(t *testing.T) {
	for _, raw := range []string{"", "   ", "call us", "Rp", "-5000"} {
		got, ok := normalize.ParsePrice(raw)
		assert.False(t, ok, "raw %q", raw)
		assert.Zero(t, got, "raw %q", raw)
	}
}
