package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"suplio/internal/domain"
	"suplio/internal/port"
)

type dictionaryRepo struct {
	db *sqlx.DB
}

// NewDictionaryRepo creates a new PostgreSQL-backed DictionaryRepository.
// The dictionary_entries table is owned by an external schema; this
// repository only reads and writes rows.
func NewDictionaryRepo(db *sqlx.DB) port.DictionaryRepository {
	return &dictionaryRepo{db: db}
}

func (r *dictionaryRepo) List(ctx context.Context, kind domain.EntryKind) ([]domain.DictionaryEntry, error) {
	var entries []domain.DictionaryEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM dictionary_entries WHERE kind = $1 ORDER BY source`, kind)
	if err != nil {
		return nil, fmt.Errorf("dictionaryRepo.List: %w", err)
	}
	return entries, nil
}

func (r *dictionaryRepo) ListAll(ctx context.Context) ([]domain.DictionaryEntry, error) {
	var entries []domain.DictionaryEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM dictionary_entries ORDER BY kind, source`)
	if err != nil {
		return nil, fmt.Errorf("dictionaryRepo.ListAll: %w", err)
	}
	return entries, nil
}

func (r *dictionaryRepo) Create(ctx context.Context, entry *domain.DictionaryEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.Source = strings.ToLower(strings.TrimSpace(entry.Source))

	var existing uuid.UUID
	err := r.db.GetContext(ctx, &existing,
		`SELECT id FROM dictionary_entries WHERE kind = $1 AND source = $2`,
		entry.Kind, entry.Source)
	if err == nil {
		return domain.ErrDuplicateEntry
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("dictionaryRepo.Create: checking uniqueness: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO dictionary_entries
		 (id, kind, source, target, language, conversion_factor, category, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.Kind, entry.Source, entry.Target,
		entry.Language, entry.ConversionFactor, entry.Category, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("dictionaryRepo.Create: %w", err)
	}
	return nil
}

func (r *dictionaryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM dictionary_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("dictionaryRepo.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("dictionaryRepo.Delete: rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
