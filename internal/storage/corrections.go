package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/akashdeo/smspend/internal/model"
)

// SaveCorrection appends a correction. Corrections are never updated or
// deleted; the feedback loop resolves conflicts by recency.
func (s *SQLiteStorage) SaveCorrection(ctx context.Context, correction *model.Correction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCorrection(correction); err != nil {
		return err
	}

	if correction.CorrectedAt.IsZero() {
		correction.CorrectedAt = time.Now().UTC()
	}
	if correction.CreatedAt.IsZero() {
		correction.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO corrections (message_id, text, category, corrected_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		correction.MessageID,
		correction.Text,
		string(correction.Category),
		correction.CorrectedAt,
		correction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save correction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read correction id: %w", err)
	}
	correction.ID = id
	correction.Seq = id
	return nil
}

// GetCorrections returns all corrections in insertion order.
func (s *SQLiteStorage) GetCorrections(ctx context.Context) ([]model.Correction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, message_id, text, category, corrected_at, created_at
		FROM corrections
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Correction
	for rows.Next() {
		var c model.Correction
		if err := rows.Scan(&c.ID, &c.MessageID, &c.Text, &c.Category, &c.CorrectedAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		c.Seq = c.ID
		out = append(out, c)
	}
	return out, rows.Err()
}
