package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/waichung/safetyhub"
)

// Compile-time interface check
var _ safetyhub.InspectionStore = (*InspectionStore)(nil)

// InspectionStore implements safetyhub.InspectionStore on a JSONB
// document table. Writes always replace the whole record; there is no
// partial update primitive.
type InspectionStore struct {
	db *DB
}

// PutInspection inserts or replaces a record by id.
func (s *InspectionStore) PutInspection(ctx context.Context, record *safetyhub.InspectionRecord) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling inspection record: %w", err)
	}

	_, err = s.db.pool.Exec(ctx, `
		INSERT INTO inspection_records (id, date, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET date = EXCLUDED.date, doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
		record.ID, safetyhub.DateOnly(record.Date), doc, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("storing inspection record: %w", err)
	}
	return nil
}

// GetAllInspections returns every record ordered by inspection date
// descending, newest insert first within a date.
func (s *InspectionStore) GetAllInspections(ctx context.Context) ([]*safetyhub.InspectionRecord, error) {
	rows, err := s.db.pool.Query(ctx, `
		SELECT doc FROM inspection_records
		ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying inspection records: %w", err)
	}
	defer rows.Close()

	var records []*safetyhub.InspectionRecord
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning inspection record: %w", err)
		}
		var record safetyhub.InspectionRecord
		if err := json.Unmarshal(doc, &record); err != nil {
			return nil, fmt.Errorf("unmarshaling inspection record: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inspection records: %w", err)
	}
	return records, nil
}

// DeleteInspection removes a record by id. Deleting a missing id is not
// an error.
func (s *InspectionStore) DeleteInspection(ctx context.Context, id string) error {
	_, err := s.db.pool.Exec(ctx, `DELETE FROM inspection_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting inspection record: %w", err)
	}
	return nil
}
