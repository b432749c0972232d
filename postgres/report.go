package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/waichung/safetyhub"
)

// Compile-time interface check
var _ safetyhub.ReportStore = (*ReportStore)(nil)

// ReportStore implements safetyhub.ReportStore on a JSONB document table.
type ReportStore struct {
	db *DB
}

// PutReport inserts or replaces a report by id. Since ids derive from the
// week start, saving the same week twice lands on the same row.
func (s *ReportStore) PutReport(ctx context.Context, report *safetyhub.WeeklyReport) error {
	doc, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling weekly report: %w", err)
	}

	_, err = s.db.pool.Exec(ctx, `
		INSERT INTO weekly_reports (id, week_start, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET week_start = EXCLUDED.week_start, doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
		report.ID, safetyhub.DateOnly(report.WeekStart), doc, report.CreatedAt, report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("storing weekly report: %w", err)
	}
	return nil
}

// GetAllReports returns every report ordered by week start descending.
func (s *ReportStore) GetAllReports(ctx context.Context) ([]*safetyhub.WeeklyReport, error) {
	rows, err := s.db.pool.Query(ctx, `
		SELECT doc FROM weekly_reports
		ORDER BY week_start DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying weekly reports: %w", err)
	}
	defer rows.Close()

	var reports []*safetyhub.WeeklyReport
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning weekly report: %w", err)
		}
		var report safetyhub.WeeklyReport
		if err := json.Unmarshal(doc, &report); err != nil {
			return nil, fmt.Errorf("unmarshaling weekly report: %w", err)
		}
		reports = append(reports, &report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weekly reports: %w", err)
	}
	return reports, nil
}

// DeleteReport removes a report by id. Deleting a missing id is not an
// error.
func (s *ReportStore) DeleteReport(ctx context.Context, id string) error {
	_, err := s.db.pool.Exec(ctx, `DELETE FROM weekly_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting weekly report: %w", err)
	}
	return nil
}
