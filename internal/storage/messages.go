package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akashdeo/smspend/internal/common"
	"github.com/akashdeo/smspend/internal/model"
	"github.com/akashdeo/smspend/internal/service"
)

// SaveMessages stores a batch of messages, skipping duplicates by text hash.
func (s *SQLiteStorage) SaveMessages(ctx context.Context, messages []model.Message) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMessages(messages); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range messages {
		m := &messages[i]
		if m.Hash == "" {
			m.Hash = m.GenerateHash()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now().UTC()
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO messages (id, hash, text, owner, received_at, corrected, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(hash) DO NOTHING
		`, m.ID, m.Hash, m.Text, m.Owner, nullableTime(m.ReceivedAt), m.Corrected, m.CreatedAt); err != nil {
			return fmt.Errorf("failed to save message %s: %w", m.ID, err)
		}
	}

	return tx.Commit()
}

// GetMessageByID retrieves a single message.
func (s *SQLiteStorage) GetMessageByID(ctx context.Context, id string) (*model.Message, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, hash, text, owner, received_at, corrected, created_at
		FROM messages WHERE id = ?
	`, id)

	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return m, nil
}

// GetMessageByHash retrieves a message by its text hash.
func (s *SQLiteStorage) GetMessageByHash(ctx context.Context, hash string) (*model.Message, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(hash, "hash"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, hash, text, owner, received_at, corrected, created_at
		FROM messages WHERE hash = ?
	`, hash)

	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message by hash: %w", err)
	}
	return m, nil
}

// GetMessages retrieves messages matching the filter, newest first.
func (s *SQLiteStorage) GetMessages(ctx context.Context, filter service.MessageFilter) ([]model.Message, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT m.id, m.hash, m.text, m.owner, m.received_at, m.corrected, m.created_at
		FROM messages m`
	args := []any{}

	if filter.NeedsReview != nil {
		query += `
		JOIN classifications c ON c.message_id = m.id
		WHERE c.needs_review = ? AND m.corrected = 0`
		args = append(args, *filter.NeedsReview)
	}

	query += ` ORDER BY m.created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// MarkMessageCorrected flips the corrected flag, marking the message as
// ground truth and removing it from review queues.
func (s *SQLiteStorage) MarkMessageCorrected(ctx context.Context, messageID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(messageID, "messageID"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE messages SET corrected = 1 WHERE id = ?`, messageID)
	if err != nil {
		return fmt.Errorf("failed to mark message corrected: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return common.ErrMessageNotFound
	}
	return nil
}

// CountCorrectedPending counts messages whose corrections have not yet been
// consumed by a retrain.
func (s *SQLiteStorage) CountCorrectedPending(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE corrected = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count corrected messages: %w", err)
	}
	return n, nil
}

// ResetCorrectedFlags clears all corrected flags after a successful retrain.
func (s *SQLiteStorage) ResetCorrectedFlags(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE messages SET corrected = 0 WHERE corrected = 1`); err != nil {
		return fmt.Errorf("failed to reset corrected flags: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*model.Message, error) {
	var m model.Message
	var owner sql.NullString
	var receivedAt sql.NullTime

	if err := row.Scan(&m.ID, &m.Hash, &m.Text, &owner, &receivedAt, &m.Corrected, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Owner = owner.String
	if receivedAt.Valid {
		m.ReceivedAt = receivedAt.Time
	}
	return &m, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
