package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"suplio/internal/dictionary"
	"suplio/internal/domain"
	"suplio/internal/port"
)

// DictionaryService manages translation table entries and keeps the cached
// dictionary snapshot in sync with the backing repository.
type DictionaryService struct {
	repo  port.DictionaryRepository
	store *dictionary.Store
}

// NewDictionaryService creates a DictionaryService.
func NewDictionaryService(repo port.DictionaryRepository, store *dictionary.Store) *DictionaryService {
	return &DictionaryService{repo: repo, store: store}
}

// ListEntries returns entries of one kind, or every entry when kind is empty.
func (s *DictionaryService) ListEntries(ctx context.Context, kind domain.EntryKind) ([]domain.DictionaryEntry, error) {
	if kind == "" {
		return s.repo.ListAll(ctx)
	}
	if kind != domain.EntryKindLanguage && kind != domain.EntryKindUnit {
		return nil, fmt.Errorf("unknown entry kind %q: %w", kind, domain.ErrInvalidEntry)
	}
	return s.repo.List(ctx, kind)
}

// AddEntry validates and persists one entry, then rebuilds the snapshot so
// the new translation takes effect immediately.
func (s *DictionaryService) AddEntry(ctx context.Context, entry *domain.DictionaryEntry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("creating %s entry %q: %w", entry.Kind, entry.Source, err)
	}
	log.Printf("service.DictionaryService: added %s entry %q -> %q", entry.Kind, entry.Source, entry.Target)
	return s.store.Refresh(ctx)
}

// DeleteEntry removes one entry by ID and rebuilds the snapshot.
func (s *DictionaryService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting entry %s: %w", id, err)
	}
	log.Printf("service.DictionaryService: deleted entry %s", id)
	return s.store.Refresh(ctx)
}

// Refresh forces a snapshot rebuild from the repository.
func (s *DictionaryService) Refresh(ctx context.Context) error {
	return s.store.Refresh(ctx)
}

func validateEntry(entry *domain.DictionaryEntry) error {
	entry.Source = strings.TrimSpace(entry.Source)
	entry.Target = strings.TrimSpace(entry.Target)

	if entry.Source == "" || entry.Target == "" {
		return fmt.Errorf("source and target are required: %w", domain.ErrInvalidEntry)
	}
	switch entry.Kind {
	case domain.EntryKindLanguage:
	case domain.EntryKindUnit:
		if entry.ConversionFactor < 0 {
			return fmt.Errorf("conversion factor must not be negative: %w", domain.ErrInvalidEntry)
		}
		if entry.ConversionFactor == 0 {
			entry.ConversionFactor = 1
		}
	default:
		return fmt.Errorf("unknown entry kind %q: %w", entry.Kind, domain.ErrInvalidEntry)
	}
	return nil
}
