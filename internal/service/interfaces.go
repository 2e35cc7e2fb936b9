// Package service defines the interfaces between the classification core and
// the application around it.
package service

import (
	"context"

	"github.com/akashdeo/smspend/internal/model"
)

// MessageFilter defines filtering options for message queries.
type MessageFilter struct {
	NeedsReview *bool
	Limit       int
	Offset      int
}

// Storage is the persistence contract the classification core consumes. The
// core never owns storage; it sees an append-only message store with a
// mutable corrected flag.
type Storage interface {
	// Message operations.
	SaveMessages(ctx context.Context, messages []model.Message) error
	GetMessageByID(ctx context.Context, id string) (*model.Message, error)
	GetMessageByHash(ctx context.Context, hash string) (*model.Message, error)
	GetMessages(ctx context.Context, filter MessageFilter) ([]model.Message, error)

	// Classification operations.
	SaveClassification(ctx context.Context, classification *model.Classification) error
	GetClassification(ctx context.Context, messageID string) (*model.Classification, error)

	// Correction operations.
	SaveCorrection(ctx context.Context, correction *model.Correction) error
	GetCorrections(ctx context.Context) ([]model.Correction, error)
	MarkMessageCorrected(ctx context.Context, messageID string) error
	CountCorrectedPending(ctx context.Context) (int, error)
	ResetCorrectedFlags(ctx context.Context) error

	// GetLabeledCorpus returns the historical (text, label) pairs that form
	// the base training corpus, before corrections are applied.
	GetLabeledCorpus(ctx context.Context) ([]model.TrainingExample, error)

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}
