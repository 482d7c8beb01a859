package match_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suplio/internal/domain"
	"suplio/internal/match"
)

func TestSimilarity_Identity(t *testing.T) {
	assert.Equal(t, 1.0, match.Similarity("carrot fresh", "carrot fresh"))
	assert.Equal(t, 1.0, match.Similarity("", ""))
}

func TestSimilarity_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"carrot", "carot"},
		{"potato kg", "potatoes kg"},
		{"shallot", "onion"},
		{"", "carrot"},
	}
	for _, p := range pairs {
		assert.Equal(t, match.Similarity(p[0], p[1]), match.Similarity(p[1], p[0]), "pair %v", p)
	}
}

func TestSimilarity_Range(t *testing.T) {
	pairs := [][2]string{
		{"carrot", "carrots"},
		{"abc", "xyz"},
		{"", "abc"},
		{"wortel segar", "carrot fresh"},
	}
	for _, p := range pairs {
		s := match.Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0, "pair %v", p)
		assert.LessOrEqual(t, s, 1.0, "pair %v", p)
	}
}

func TestSimilarity_KnownDistances(t *testing.T) {
	// one substitution over six runes
	assert.InDelta(t, 1.0-1.0/6.0, match.Similarity("carrot", "carrbt"), 1e-9)
	// completely disjoint strings
	assert.Equal(t, 0.0, match.Similarity("abc", "xyz"))
	// rune-based, not byte-based
	assert.InDelta(t, 1.0-1.0/5.0, match.Similarity("cabé1", "cabe1"), 1e-9)
}

func TestFindBestMatch_AboveThreshold(t *testing.T) {
	wantID := uuid.New()
	shortlist := []domain.CatalogProduct{
		{ID: uuid.New(), StandardName: "potato", Unit: "kg"},
		{ID: wantID, StandardName: "carrot fresh", Unit: "kg"},
		{ID: uuid.New(), StandardName: "shallot", Unit: "kg"},
	}

	m := match.NewMatcher(0.85)
	got := m.FindBestMatch(domain.NormalizedProduct{StandardName: "carrot fresh", Unit: "kg"}, shortlist)

	require.NotNil(t, got.BestMatchID)
	assert.Equal(t, wantID, *got.BestMatchID)
	assert.Equal(t, 1.0, got.Similarity)
}

func TestFindBestMatch_BelowThreshold(t *testing.T) {
	shortlist := []domain.CatalogProduct{
		{ID: uuid.New(), StandardName: "watermelon", Unit: "pcs"},
	}

	m := match.NewMatcher(0.85)
	got := m.FindBestMatch(domain.NormalizedProduct{StandardName: "carrot", Unit: "kg"}, shortlist)

	assert.Nil(t, got.BestMatchID)
	assert.Less(t, got.Similarity, 0.85)
}

func TestFindBestMatch_UnitDisambiguates(t *testing.T) {
	kgID := uuid.New()
	shortlist := []domain.CatalogProduct{
		{ID: uuid.New(), StandardName: "carrot", Unit: "bunch"},
		{ID: kgID, StandardName: "carrot", Unit: "kg"},
	}

	m := match.NewMatcher(0.85)
	got := m.FindBestMatch(domain.NormalizedProduct{StandardName: "carrot", Unit: "kg"}, shortlist)

	require.NotNil(t, got.BestMatchID)
	assert.Equal(t, kgID, *got.BestMatchID)
}

func TestFindBestMatch_EmptyShortlist(t *testing.T) {
	m := match.NewMatcher(0)
	got := m.FindBestMatch(domain.NormalizedProduct{StandardName: "carrot"}, nil)

	assert.Nil(t, got.BestMatchID)
	assert.Zero(t, got.Similarity)
}
