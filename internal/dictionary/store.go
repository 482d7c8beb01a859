package dictionary

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"suplio/internal/domain"
	"suplio/internal/port"
)

// snapshot is one immutable generation of the translation tables. It is
// replaced wholesale on refresh and never mutated in place.
type snapshot struct {
	languages map[string]domain.DictionaryEntry
	units     map[string]domain.DictionaryEntry
	builtAt   time.Time
}

// Store serves cached dictionary lookups from an in-memory snapshot built
// from a backing repository. Reads are lock-free; refresh is the only
// writer and swaps the snapshot atomically, so a stale snapshot keeps
// serving lookups until the new one is ready.
type Store struct {
	repo port.DictionaryRepository
	ttl  time.Duration

	snap      atomic.Pointer[snapshot]
	refreshMu sync.Mutex
	inFlight  atomic.Bool
}

// NewStore creates a Store over the given repository. A non-positive TTL
// disables time-based refresh; lookups then serve the loaded snapshot until
// Refresh is called explicitly.
func NewStore(repo port.DictionaryRepository, ttl time.Duration) *Store {
	return &Store{repo: repo, ttl: ttl}
}

// Load builds the initial snapshot. It must be called once before lookups.
func (s *Store) Load(ctx context.Context) error {
	return s.Refresh(ctx)
}

// Refresh rebuilds the snapshot from the repository. On failure the
// last-good snapshot remains valid indefinitely and the error is returned
// to the caller only; concurrent lookups are never affected.
func (s *Store) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("dictionary.Store: listing entries: %w", err)
	}

	next := &snapshot{
		languages: make(map[string]domain.DictionaryEntry),
		units:     make(map[string]domain.DictionaryEntry),
		builtAt:   time.Now(),
	}
	for _, e := range entries {
		key := normalizeKey(e.Source)
		if key == "" {
			continue
		}
		switch e.Kind {
		case domain.EntryKindLanguage:
			next.languages[key] = e
		case domain.EntryKindUnit:
			next.units[key] = e
		}
	}
	s.snap.Store(next)
	return nil
}

// LookupLanguage returns the canonical target word for a source word.
func (s *Store) LookupLanguage(word string) (string, bool) {
	snap := s.current()
	if snap == nil {
		return "", false
	}
	e, ok := snap.languages[normalizeKey(word)]
	if !ok {
		return "", false
	}
	return e.Target, true
}

// LookupLanguageEntry returns the full language entry for a source word.
func (s *Store) LookupLanguageEntry(word string) (domain.DictionaryEntry, bool) {
	snap := s.current()
	if snap == nil {
		return domain.DictionaryEntry{}, false
	}
	e, ok := snap.languages[normalizeKey(word)]
	return e, ok
}

// LookupUnit returns the canonical unit and conversion factor for a source
// unit token.
func (s *Store) LookupUnit(unit string) (string, float64, bool) {
	snap := s.current()
	if snap == nil {
		return "", 0, false
	}
	e, ok := snap.units[normalizeKey(unit)]
	if !ok {
		return "", 0, false
	}
	return e.Target, e.ConversionFactor, true
}

// Generation returns the build time of the snapshot currently being served.
func (s *Store) Generation() time.Time {
	snap := s.current()
	if snap == nil {
		return time.Time{}
	}
	return snap.builtAt
}

// current returns the served snapshot, kicking off a background refresh
// when the TTL has expired. The stale snapshot is returned immediately so
// reads never block on a rebuild.
func (s *Store) current() *snapshot {
	snap := s.snap.Load()
	if snap == nil {
		return nil
	}
	if s.ttl > 0 && time.Since(snap.builtAt) > s.ttl && s.inFlight.CompareAndSwap(false, true) {
		go func() {
			defer s.inFlight.Store(false)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.Refresh(ctx); err != nil {
				log.Printf("dictionary.Store: background refresh failed, serving last-good snapshot: %v", err)
			}
		}()
	}
	return snap
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
