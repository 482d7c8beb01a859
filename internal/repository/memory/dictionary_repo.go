package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"suplio/internal/domain"
	"suplio/internal/port"
)

type dictionaryRepo struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]domain.DictionaryEntry
}

// NewDictionaryRepo creates an empty in-memory DictionaryRepository.
func NewDictionaryRepo() port.DictionaryRepository {
	return &dictionaryRepo{entries: make(map[uuid.UUID]domain.DictionaryEntry)}
}

// NewSeededDictionaryRepo creates an in-memory DictionaryRepository
// pre-populated with the given entries.
func NewSeededDictionaryRepo(entries []domain.DictionaryEntry) port.DictionaryRepository {
	r := &dictionaryRepo{entries: make(map[uuid.UUID]domain.DictionaryEntry, len(entries))}
	for _, e := range entries {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		r.entries[e.ID] = e
	}
	return r
}

func (r *dictionaryRepo) List(ctx context.Context, kind domain.EntryKind) ([]domain.DictionaryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.DictionaryEntry
	for _, e := range r.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *dictionaryRepo) ListAll(ctx context.Context) ([]domain.DictionaryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.DictionaryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out, nil
}

func (r *dictionaryRepo) Create(ctx context.Context, entry *domain.DictionaryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(strings.TrimSpace(entry.Source))
	for _, e := range r.entries {
		if e.Kind == entry.Kind && strings.ToLower(strings.TrimSpace(e.Source)) == key {
			return domain.ErrDuplicateEntry
		}
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	r.entries[entry.ID] = *entry
	return nil
}

func (r *dictionaryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}
