package port

import (
	"context"

	"github.com/google/uuid"

	"suplio/internal/domain"
)

// DictionaryRepository is the backing store for translation table entries.
// The dictionary store rebuilds its in-memory snapshot from List on refresh.
type DictionaryRepository interface {
	List(ctx context.Context, kind domain.EntryKind) ([]domain.DictionaryEntry, error)
	ListAll(ctx context.Context) ([]domain.DictionaryEntry, error)
	Create(ctx context.Context, entry *domain.DictionaryEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}
