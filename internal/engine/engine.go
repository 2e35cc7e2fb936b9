// Package engine composes the amount extractor, rule engine, and statistical
// classifier into one classification decision per message, and runs the
// correction-driven retraining loop.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akashdeo/smspend/internal/classifier"
	"github.com/akashdeo/smspend/internal/common"
	"github.com/akashdeo/smspend/internal/extract"
	"github.com/akashdeo/smspend/internal/lifecycle"
	"github.com/akashdeo/smspend/internal/model"
	"github.com/akashdeo/smspend/internal/rules"
	"github.com/akashdeo/smspend/internal/service"
)

// Config holds configuration options for the classification engine.
type Config struct {
	// ConfidenceThreshold flags model-provenance classifications below it as
	// needing review. Rule decisions are never flagged.
	ConfidenceThreshold float64
	// RetrainThreshold is the corrected-message count that makes
	// ShouldRetrain return true.
	RetrainThreshold int
	// Training holds the vectorizer hyperparameters used on retrain.
	Training classifier.Config
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: 0.70,
		RetrainThreshold:    5,
		Training:            classifier.DefaultConfig(),
	}
}

// ClassificationEngine orchestrates the hybrid rule/model pipeline.
type ClassificationEngine struct {
	storage   service.Storage
	rules     *rules.Engine
	extractor *extract.Extractor
	models    *lifecycle.Manager
	cfg       Config
	retrainMu sync.Mutex
}

// New creates a classification engine with the default configuration.
func New(storage service.Storage, ruleEngine *rules.Engine, extractor *extract.Extractor, models *lifecycle.Manager) *ClassificationEngine {
	return NewWithConfig(storage, ruleEngine, extractor, models, DefaultConfig())
}

// NewWithConfig creates a classification engine with custom configuration.
func NewWithConfig(storage service.Storage, ruleEngine *rules.Engine, extractor *extract.Extractor, models *lifecycle.Manager, cfg Config) *ClassificationEngine {
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = DefaultConfig().ConfidenceThreshold
	}
	if cfg.RetrainThreshold <= 0 {
		cfg.RetrainThreshold = DefaultConfig().RetrainThreshold
	}
	return &ClassificationEngine{
		storage:   storage,
		rules:     ruleEngine,
		extractor: extractor,
		models:    models,
		cfg:       cfg,
	}
}

// Classify produces a best-effort classification for text. It never fails:
// malformed amounts resolve to an absent amount, and a missing model resolves
// to the Unknown category with zero confidence. Rules are consulted first and
// are never second-guessed by the model.
func (e *ClassificationEngine) Classify(text string) model.Classification {
	c := model.Classification{
		ClassifiedAt: time.Now().UTC(),
	}

	if v, ok := e.extractor.Amount(text); ok {
		c.Amount = &v
	}

	if m, ok := e.rules.Evaluate(text); ok {
		c.Category = m.Category
		c.Confidence = m.Confidence
		c.Provenance = model.ProvenanceRule
		return c
	}

	pred := e.models.Current().Predict(text)
	c.Category = pred.Category
	c.Confidence = pred.Confidence
	c.Provenance = model.ProvenanceModel
	c.NeedsReview = pred.Confidence < e.cfg.ConfidenceThreshold
	return c
}

// ClassifyAndStore ingests a raw message, classifies it, and persists both.
// Re-ingesting an already seen text reuses the stored message.
func (e *ClassificationEngine) ClassifyAndStore(ctx context.Context, text, owner string, receivedAt time.Time) (model.Classification, error) {
	msgID, err := e.ensureMessage(ctx, model.Message{
		ID:         uuid.NewString(),
		Text:       text,
		Owner:      owner,
		ReceivedAt: receivedAt,
	})
	if err != nil {
		return model.Classification{}, err
	}

	c := e.Classify(text)
	c.MessageID = msgID
	if err := e.storage.SaveClassification(ctx, &c); err != nil {
		return model.Classification{}, fmt.Errorf("failed to save classification: %w", err)
	}
	return c, nil
}

// ensureMessage stores msg unless a message with the same text already
// exists, and returns the id actually on record.
func (e *ClassificationEngine) ensureMessage(ctx context.Context, msg model.Message) (string, error) {
	existing, err := e.storage.GetMessageByHash(ctx, msg.GenerateHash())
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, common.ErrMessageNotFound) {
		return "", fmt.Errorf("failed to look up message: %w", err)
	}

	if err := e.storage.SaveMessages(ctx, []model.Message{msg}); err != nil {
		return "", fmt.Errorf("failed to save message: %w", err)
	}
	return msg.ID, nil
}

// ImportLabeled stores pre-labeled messages as ground-truth corpus rows. The
// labels are definitional, so they are stored as rule-provenance
// classifications with full confidence.
func (e *ClassificationEngine) ImportLabeled(ctx context.Context, examples []model.TrainingExample) (int, error) {
	imported := 0
	for _, ex := range examples {
		if !ex.Label.IsKnown() {
			return imported, fmt.Errorf("example %q: unknown category %q", truncate(ex.Text, 40), ex.Label)
		}

		msgID, err := e.ensureMessage(ctx, model.Message{
			ID:   uuid.NewString(),
			Text: ex.Text,
		})
		if err != nil {
			return imported, err
		}

		c := model.Classification{
			MessageID:  msgID,
			Category:   ex.Label,
			Confidence: 1.0,
			Provenance: model.ProvenanceRule,
		}
		if v, ok := e.extractor.Amount(ex.Text); ok {
			c.Amount = &v
		}
		if err := e.storage.SaveClassification(ctx, &c); err != nil {
			return imported, fmt.Errorf("failed to save imported label: %w", err)
		}
		imported++
	}
	return imported, nil
}

// ModelStatus describes the active model and pending feedback.
type ModelStatus struct {
	TrainedAt        time.Time
	Version          string
	TrainedOn        int
	CorrectedPending int
	Loaded           bool
}

// ModelStatus reports the lifecycle state plus the count of corrections not
// yet consumed by a retrain.
func (e *ClassificationEngine) ModelStatus(ctx context.Context) (ModelStatus, error) {
	pending, err := e.storage.CountCorrectedPending(ctx)
	if err != nil {
		return ModelStatus{}, fmt.Errorf("failed to count pending corrections: %w", err)
	}

	st := e.models.Status()
	return ModelStatus{
		Loaded:           st.Loaded,
		Version:          st.Version,
		TrainedAt:        st.TrainedAt,
		TrainedOn:        st.ExampleCount,
		CorrectedPending: pending,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
