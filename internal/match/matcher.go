package match

import (
	"strings"

	"suplio/internal/domain"
)

// DefaultThreshold is the minimum similarity for a catalog match.
const DefaultThreshold = 0.85

// Matcher decides whether a normalized candidate is the same real-world
// product as one already known to the catalog. It compares against a
// bounded shortlist, never the whole catalog.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a Matcher. A non-positive threshold falls back to
// DefaultThreshold.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// FindBestMatch returns the highest-scoring shortlist entry above the
// threshold as the candidate's best match; BestMatchID stays nil when
// nothing qualifies.
func (m *Matcher) FindBestMatch(product domain.NormalizedProduct, shortlist []domain.CatalogProduct) domain.MatchCandidate {
	candidate := domain.MatchCandidate{Product: product}
	key := matchKey(product.StandardName, product.Unit)

	for i := range shortlist {
		known := &shortlist[i]
		score := Similarity(key, matchKey(known.StandardName, known.Unit))
		if score > candidate.Similarity {
			candidate.Similarity = score
			if score >= m.threshold {
				id := known.ID
				candidate.BestMatchID = &id
			}
		}
	}
	if candidate.Similarity < m.threshold {
		candidate.BestMatchID = nil
	}
	return candidate
}

func matchKey(name, unit string) string {
	return strings.TrimSpace(strings.ToLower(name) + " " + strings.ToLower(unit))
}

// Similarity computes normalized edit-distance similarity:
// 1 - levenshtein(a,b)/max(len(a),len(b)). Symmetric by construction, 1.0
// for identical strings (including two empty strings).
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// levenshtein computes the edit distance with a two-row matrix.
func levenshtein(r1, r2 []rune) int {
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	n := len(r2)
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[n]
}
