// Package lifecycle owns the currently active model artifact: loading it
// from disk, hot-swapping it after retraining, and reporting its status.
package lifecycle

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/akashdeo/smspend/internal/classifier"
)

// Status describes the active artifact, if any.
type Status struct {
	TrainedAt    time.Time
	Version      string
	ExampleCount int
	Loaded       bool
}

// Manager holds an immutable reference to the active artifact. Readers take
// the reference with Current and keep using it for the duration of one
// classification; writers install a fully constructed replacement with
// HotSwap. Readers never observe a partially built artifact.
type Manager struct {
	current  atomic.Pointer[classifier.Artifact]
	modelDir string
}

// NewManager creates a manager persisting artifacts under modelDir. No
// artifact is loaded yet; call Load.
func NewManager(modelDir string) *Manager {
	return &Manager{modelDir: modelDir}
}

// Load reads the persisted artifact from disk and makes it active. On
// failure the manager stays in its previous state: a missing or corrupt file
// degrades classification to rule-engine-only behavior rather than crashing.
func (m *Manager) Load() error {
	artifact, err := classifier.LoadArtifact(m.modelDir)
	if err != nil {
		return fmt.Errorf("failed to load model artifact: %w", err)
	}

	m.current.Store(artifact)
	slog.Info("Model artifact loaded",
		"version", artifact.Version,
		"labels", len(artifact.Labels),
		"trained_on", artifact.ExampleCount)
	return nil
}

// HotSwap atomically replaces the active artifact and persists it. In-flight
// readers keep the artifact they already hold; new readers see the new one.
func (m *Manager) HotSwap(artifact *classifier.Artifact) error {
	if artifact == nil {
		return fmt.Errorf("cannot swap in a nil artifact")
	}
	if err := classifier.SaveArtifact(artifact, m.modelDir); err != nil {
		return fmt.Errorf("failed to persist model artifact: %w", err)
	}

	m.current.Store(artifact)
	slog.Info("Model artifact swapped", "version", artifact.Version)
	return nil
}

// Current returns the active artifact, or nil when none is loaded.
func (m *Manager) Current() *classifier.Artifact {
	return m.current.Load()
}

// Status reports whether an artifact is loaded and which one.
func (m *Manager) Status() Status {
	artifact := m.current.Load()
	if artifact == nil {
		return Status{}
	}
	return Status{
		Loaded:       true,
		Version:      artifact.Version,
		TrainedAt:    artifact.TrainedAt,
		ExampleCount: artifact.ExampleCount,
	}
}
