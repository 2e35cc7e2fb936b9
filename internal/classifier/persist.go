package classifier

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jbrukh/bayesian"

	"github.com/akashdeo/smspend/internal/common"
	"github.com/akashdeo/smspend/internal/model"
)

// Artifact files inside the model directory. The bayesian classifier owns
// its own gob encoding; the metadata file carries everything else needed to
// round-trip the pipeline.
const (
	metadataFile   = "artifact.gob"
	classifierFile = "classifier.gob"
)

type artifactMetadata struct {
	TrainedAt    time.Time
	Version      string
	Labels       []model.Category
	Vocabulary   []string
	ExampleCount int
}

// SaveArtifact persists the artifact into dir. The metadata file is written
// to a temp file and renamed so a crash never leaves a readable-but-stale
// pair.
func SaveArtifact(a *Artifact, dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	if err := a.clf.WriteToFile(filepath.Join(dir, classifierFile)); err != nil {
		return fmt.Errorf("failed to write classifier: %w", err)
	}

	meta := artifactMetadata{
		Version:      a.Version,
		TrainedAt:    a.TrainedAt,
		Labels:       a.Labels,
		ExampleCount: a.ExampleCount,
		Vocabulary:   make([]string, 0, len(a.vocabulary)),
	}
	for tok := range a.vocabulary {
		meta.Vocabulary = append(meta.Vocabulary, tok)
	}

	tmp, err := os.CreateTemp(dir, metadataFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create metadata temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := gob.NewEncoder(tmp).Encode(meta); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close metadata temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, metadataFile)); err != nil {
		return fmt.Errorf("failed to replace metadata: %w", err)
	}
	return nil
}

// LoadArtifact reads a previously saved artifact from dir. A missing
// directory or file maps to common.ErrArtifactNotFound; anything unreadable
// maps to common.ErrCorruptArtifact.
func LoadArtifact(dir string) (*Artifact, error) {
	f, err := os.Open(filepath.Join(dir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("failed to open metadata: %w", err)
	}
	defer func() { _ = f.Close() }()

	var meta artifactMetadata
	if err := gob.NewDecoder(f).Decode(&meta); err != nil {
		return nil, fmt.Errorf("%w: metadata: %v", common.ErrCorruptArtifact, err)
	}

	clf, err := bayesian.NewClassifierFromFile(filepath.Join(dir, classifierFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("%w: classifier: %v", common.ErrCorruptArtifact, err)
	}

	if len(clf.Classes) != len(meta.Labels) {
		return nil, fmt.Errorf("%w: label set does not match classifier classes", common.ErrCorruptArtifact)
	}

	vocab := make(map[string]struct{}, len(meta.Vocabulary))
	for _, tok := range meta.Vocabulary {
		vocab[tok] = struct{}{}
	}

	return &Artifact{
		Version:      meta.Version,
		TrainedAt:    meta.TrainedAt,
		Labels:       meta.Labels,
		ExampleCount: meta.ExampleCount,
		vocabulary:   vocab,
		clf:          clf,
	}, nil
}
