package service

import (
	"suplio/internal/domain"
	"suplio/internal/match"
	"suplio/internal/normalize"
)

// MatchingService links normalized products to known catalog products.
type MatchingService struct {
	matcher    *match.Matcher
	normalizer *normalize.Normalizer
}

// NewMatchingService creates a MatchingService.
func NewMatchingService(m *match.Matcher, n *normalize.Normalizer) *MatchingService {
	return &MatchingService{matcher: m, normalizer: n}
}

// FindBestMatch scores a normalized product against a caller-provided
// shortlist of catalog products.
func (s *MatchingService) FindBestMatch(product domain.NormalizedProduct, shortlist []domain.CatalogProduct) domain.MatchCandidate {
	return s.matcher.FindBestMatch(product, shortlist)
}

// MatchObservation normalizes a raw observation first, then scores it
// against the shortlist.
func (s *MatchingService) MatchObservation(raw domain.RawProductObservation, currency string, shortlist []domain.CatalogProduct) domain.MatchCandidate {
	product, _ := s.normalizer.Normalize(raw, currency)
	return s.matcher.FindBestMatch(product, shortlist)
}
