package classifier

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jbrukh/bayesian"

	"github.com/akashdeo/smspend/internal/common"
	"github.com/akashdeo/smspend/internal/model"
)

// Config holds the vectorizer hyperparameters.
type Config struct {
	// MaxFeatures caps the vocabulary, keeping the highest-document-frequency
	// tokens.
	MaxFeatures int
	// MinDocFreq drops tokens seen in fewer documents than this.
	MinDocFreq int
}

// DefaultConfig returns the default training configuration.
func DefaultConfig() Config {
	return Config{
		MaxFeatures: 5000,
		MinDocFreq:  1,
	}
}

// Train fits a fresh pipeline on the given examples and returns a new
// versioned artifact. It fails cleanly when the corpus is empty or carries
// fewer than two distinct labels; it never mutates any existing artifact.
func Train(ctx context.Context, examples []model.TrainingExample, cfg Config) (*Artifact, error) {
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = DefaultConfig().MaxFeatures
	}
	if cfg.MinDocFreq <= 0 {
		cfg.MinDocFreq = 1
	}

	if len(examples) == 0 {
		return nil, common.ErrNoTrainingData
	}

	labels := distinctLabels(examples)
	if len(labels) < 2 {
		return nil, fmt.Errorf("%w: got %d", common.ErrTooFewClasses, len(labels))
	}

	docs := make([][]string, len(examples))
	for i, ex := range examples {
		docs[i] = Tokenize(ex.Text)
	}

	vocab := buildVocabulary(docs, cfg)

	classes := make([]bayesian.Class, len(labels))
	for i, l := range labels {
		classes[i] = bayesian.Class(l)
	}
	clf := bayesian.NewClassifierTfIdf(classes...)

	for i, ex := range examples {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("training interrupted: %w", err)
			}
		}
		clf.Learn(filterByVocab(docs[i], vocab), bayesian.Class(ex.Label))
	}
	clf.ConvertTermsFreqToTfIdf()

	return &Artifact{
		Version:      uuid.NewString(),
		TrainedAt:    time.Now().UTC(),
		Labels:       labels,
		ExampleCount: len(examples),
		vocabulary:   vocab,
		clf:          clf,
	}, nil
}

// distinctLabels returns the sorted set of labels present in the corpus. The
// artifact's label set is exactly this set.
func distinctLabels(examples []model.TrainingExample) []model.Category {
	seen := make(map[model.Category]struct{})
	for _, ex := range examples {
		seen[ex.Label] = struct{}{}
	}
	labels := make([]model.Category, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

// buildVocabulary computes per-token document frequency, applies the minimum
// frequency filter, and keeps the MaxFeatures most frequent tokens. Ties
// break lexicographically so training is deterministic.
func buildVocabulary(docs [][]string, cfg Config) map[string]struct{} {
	df := make(map[string]int)
	for _, doc := range docs {
		inDoc := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			inDoc[tok] = struct{}{}
		}
		for tok := range inDoc {
			df[tok]++
		}
	}

	candidates := make([]string, 0, len(df))
	for tok, n := range df {
		if n >= cfg.MinDocFreq {
			candidates = append(candidates, tok)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if df[candidates[i]] != df[candidates[j]] {
			return df[candidates[i]] > df[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > cfg.MaxFeatures {
		candidates = candidates[:cfg.MaxFeatures]
	}

	vocab := make(map[string]struct{}, len(candidates))
	for _, tok := range candidates {
		vocab[tok] = struct{}{}
	}
	return vocab
}

func filterByVocab(doc []string, vocab map[string]struct{}) []string {
	filtered := make([]string, 0, len(doc))
	for _, tok := range doc {
		if _, ok := vocab[tok]; ok {
			filtered = append(filtered, tok)
		}
	}
	return filtered
}
