package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/akashdeo/smspend/internal/classifier"
	"github.com/akashdeo/smspend/internal/common"
	"github.com/akashdeo/smspend/internal/config"
	"github.com/akashdeo/smspend/internal/engine"
	"github.com/akashdeo/smspend/internal/extract"
	"github.com/akashdeo/smspend/internal/lifecycle"
	"github.com/akashdeo/smspend/internal/rules"
	"github.com/akashdeo/smspend/internal/storage"
)

// openEngine wires storage, rules, extractor, and the model manager into a
// classification engine. The returned cleanup closes the database.
func openEngine(ctx context.Context) (*engine.ClassificationEngine, func(), error) {
	cfg := config.FromViper()

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	cleanup := func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}

	if err := store.Migrate(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	ruleEngine, err := rules.NewEngine(rules.DefaultRules())
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to compile rules: %w", err)
	}

	extractor := extract.New(extract.Config{MaxAmount: cfg.MaxAmount})

	models := lifecycle.NewManager(cfg.ModelDir)
	if err := models.Load(); err != nil {
		// Rule-only operation until the first retrain produces an artifact.
		if errors.Is(err, common.ErrArtifactNotFound) {
			slog.Info("No model artifact found, classification degrades to rules only")
		} else {
			slog.Warn("Failed to load model artifact, classification degrades to rules only", "error", err)
		}
	}

	eng := engine.NewWithConfig(store, ruleEngine, extractor, models, engine.Config{
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		RetrainThreshold:    cfg.RetrainThreshold,
		Training: classifier.Config{
			MaxFeatures: cfg.MaxFeatures,
			MinDocFreq:  cfg.MinDocFreq,
		},
	})
	return eng, cleanup, nil
}
