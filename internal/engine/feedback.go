package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akashdeo/smspend/internal/classifier"
	"github.com/akashdeo/smspend/internal/common"
	"github.com/akashdeo/smspend/internal/model"
)

// RecordCorrection appends a user-supplied ground-truth label for a stored
// message and marks the message corrected, removing it from review queues
// and flagging it for the next retrain.
func (e *ClassificationEngine) RecordCorrection(ctx context.Context, messageID string, category model.Category) error {
	if !category.IsKnown() {
		return fmt.Errorf("%w: %q", common.ErrUnknownCategory, category)
	}

	msg, err := e.storage.GetMessageByID(ctx, messageID)
	if err != nil {
		return fmt.Errorf("failed to load message: %w", err)
	}

	correction := model.Correction{
		MessageID:   msg.ID,
		Text:        msg.Text,
		Category:    category,
		CorrectedAt: time.Now().UTC(),
	}
	if err := e.storage.SaveCorrection(ctx, &correction); err != nil {
		return fmt.Errorf("failed to save correction: %w", err)
	}

	if err := e.storage.MarkMessageCorrected(ctx, msg.ID); err != nil {
		return fmt.Errorf("failed to mark message corrected: %w", err)
	}

	slog.Info("Correction recorded",
		"message_id", msg.ID,
		"category", category)
	return nil
}

// ShouldRetrain reports whether enough corrections have accumulated since
// the last retrain to justify an automatic one. Manual retrains bypass this
// check entirely.
func (e *ClassificationEngine) ShouldRetrain(ctx context.Context) (bool, error) {
	pending, err := e.storage.CountCorrectedPending(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count pending corrections: %w", err)
	}
	return pending >= e.cfg.RetrainThreshold, nil
}

// RetrainResult describes a successful retrain.
type RetrainResult struct {
	Version   string
	TrainedOn int
}

// Retrain rebuilds the statistical classifier from the full labeled corpus
// with corrections applied, then hot-swaps the new artifact in. At most one
// retrain runs at a time; a concurrent call fails with ErrRetrainInProgress.
// On any failure the previously active artifact keeps serving.
func (e *ClassificationEngine) Retrain(ctx context.Context) (RetrainResult, error) {
	if !e.retrainMu.TryLock() {
		return RetrainResult{}, common.ErrRetrainInProgress
	}
	defer e.retrainMu.Unlock()

	start := time.Now()

	corpus, err := e.storage.GetLabeledCorpus(ctx)
	if err != nil {
		return RetrainResult{}, fmt.Errorf("failed to load labeled corpus: %w", err)
	}
	corrections, err := e.storage.GetCorrections(ctx)
	if err != nil {
		return RetrainResult{}, fmt.Errorf("failed to load corrections: %w", err)
	}

	examples := BuildTrainingSet(corpus, corrections)
	slog.Info("Built training set",
		"base_corpus", len(corpus),
		"corrections", len(corrections),
		"unique_examples", len(examples))

	artifact, err := classifier.Train(ctx, examples, e.cfg.Training)
	if err != nil {
		return RetrainResult{}, fmt.Errorf("retraining failed: %w", err)
	}

	if err := e.models.HotSwap(artifact); err != nil {
		return RetrainResult{}, fmt.Errorf("failed to activate new artifact: %w", err)
	}

	// The corrected flags' signal has been consumed; the corrections
	// themselves stay on record.
	if err := e.storage.ResetCorrectedFlags(ctx); err != nil {
		return RetrainResult{}, fmt.Errorf("failed to reset corrected flags: %w", err)
	}

	logClassDistribution(examples)
	slog.Info("Retrain complete",
		"version", artifact.Version,
		"trained_on", artifact.ExampleCount,
		"duration", time.Since(start))

	return RetrainResult{
		Version:   artifact.Version,
		TrainedOn: artifact.ExampleCount,
	}, nil
}

// RetrainIfNeeded runs Retrain only when the correction threshold has been
// crossed. It returns false when no retrain was attempted.
func (e *ClassificationEngine) RetrainIfNeeded(ctx context.Context) (RetrainResult, bool, error) {
	needed, err := e.ShouldRetrain(ctx)
	if err != nil {
		return RetrainResult{}, false, err
	}
	if !needed {
		return RetrainResult{}, false, nil
	}
	result, err := e.Retrain(ctx)
	return result, true, err
}

func logClassDistribution(examples []model.TrainingExample) {
	counts := make(map[model.Category]int)
	for _, ex := range examples {
		counts[ex.Label]++
	}
	attrs := make([]any, 0, len(counts)*2)
	for label, n := range counts {
		attrs = append(attrs, string(label), n)
	}
	slog.Info("Training class distribution", attrs...)
}
