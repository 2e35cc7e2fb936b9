package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akashdeo/smspend/internal/common"
	"github.com/akashdeo/smspend/internal/model"
)

// SaveClassification stores the classification for a message, replacing any
// previous one. Classifications are derived data; only the latest matters.
func (s *SQLiteStorage) SaveClassification(ctx context.Context, classification *model.Classification) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateClassification(classification); err != nil {
		return err
	}

	if classification.ClassifiedAt.IsZero() {
		classification.ClassifiedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO classifications (
			message_id, category, amount, confidence, provenance, needs_review, classified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(message_id) DO UPDATE SET
			category = excluded.category,
			amount = excluded.amount,
			confidence = excluded.confidence,
			provenance = excluded.provenance,
			needs_review = excluded.needs_review,
			classified_at = excluded.classified_at
	`,
		classification.MessageID,
		string(classification.Category),
		classification.Amount,
		classification.Confidence,
		string(classification.Provenance),
		classification.NeedsReview,
		classification.ClassifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save classification: %w", err)
	}
	return nil
}

// GetClassification retrieves the stored classification for a message.
func (s *SQLiteStorage) GetClassification(ctx context.Context, messageID string) (*model.Classification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(messageID, "messageID"); err != nil {
		return nil, err
	}

	var c model.Classification
	var amount sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT message_id, category, amount, confidence, provenance, needs_review, classified_at
		FROM classifications WHERE message_id = ?
	`, messageID).Scan(
		&c.MessageID, &c.Category, &amount, &c.Confidence,
		&c.Provenance, &c.NeedsReview, &c.ClassifiedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get classification: %w", err)
	}
	if amount.Valid {
		c.Amount = &amount.Float64
	}
	return &c, nil
}

// GetLabeledCorpus returns the base training corpus: every message with a
// stored classification, excluding the Unknown fallback label. Corrections
// are layered on top by the feedback loop, not here.
func (s *SQLiteStorage) GetLabeledCorpus(ctx context.Context) ([]model.TrainingExample, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.text, c.category
		FROM messages m
		JOIN classifications c ON c.message_id = m.id
		WHERE c.category != ?
		ORDER BY m.created_at, m.id
	`, string(model.CategoryUnknown))
	if err != nil {
		return nil, fmt.Errorf("failed to query labeled corpus: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.TrainingExample
	for rows.Next() {
		var ex model.TrainingExample
		if err := rows.Scan(&ex.Text, &ex.Label); err != nil {
			return nil, fmt.Errorf("failed to scan corpus row: %w", err)
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}
