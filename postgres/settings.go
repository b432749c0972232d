package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/waichung/safetyhub"
)

// Compile-time interface check
var _ safetyhub.SettingsStore = (*SettingsStore)(nil)

// SettingsStore implements safetyhub.SettingsStore, one row per option
// list kind.
type SettingsStore struct {
	db *DB
}

// PutList inserts or replaces a list by kind.
func (s *SettingsStore) PutList(ctx context.Context, kind safetyhub.ListKind, items []string) error {
	doc, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshaling option list: %w", err)
	}

	_, err = s.db.pool.Exec(ctx, `
		INSERT INTO option_lists (kind, items, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (kind) DO UPDATE
		SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at`,
		string(kind), doc, time.Now())
	if err != nil {
		return fmt.Errorf("storing option list: %w", err)
	}
	return nil
}

// GetList returns the stored list, or (nil, nil) when nothing has been
// saved for the kind.
func (s *SettingsStore) GetList(ctx context.Context, kind safetyhub.ListKind) ([]string, error) {
	var doc []byte
	err := s.db.pool.QueryRow(ctx,
		`SELECT items FROM option_lists WHERE kind = $1`, string(kind)).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying option list: %w", err)
	}

	var items []string
	if err := json.Unmarshal(doc, &items); err != nil {
		return nil, fmt.Errorf("unmarshaling option list: %w", err)
	}
	return items, nil
}
