package classifier

import (
	"strings"
	"time"

	"github.com/jbrukh/bayesian"

	"github.com/akashdeo/smspend/internal/model"
)

// Artifact is a trained, immutable classification pipeline: the capped
// vocabulary, the fitted TF-IDF naive Bayes classifier, and the label set it
// was trained on. Artifacts are built by Train or loaded from disk and never
// mutated afterwards; the lifecycle manager swaps whole artifacts.
type Artifact struct {
	TrainedAt    time.Time
	Version      string
	Labels       []model.Category
	vocabulary   map[string]struct{}
	clf          *bayesian.Classifier
	ExampleCount int
}

// Prediction is the output of the statistical classifier for one text.
type Prediction struct {
	Category   model.Category
	Confidence float64
}

// unknownPrediction is the defined fallback: never an error.
func unknownPrediction() Prediction {
	return Prediction{Category: model.CategoryUnknown, Confidence: 0}
}

// Predict classifies text against the artifact. Empty or whitespace-only
// text short-circuits to the Unknown fallback without touching the
// vectorizer. When probability scores underflow, the hard prediction is kept
// and confidence reports the 0.0 sentinel.
func (a *Artifact) Predict(text string) Prediction {
	if a == nil || a.clf == nil || strings.TrimSpace(text) == "" {
		return unknownPrediction()
	}

	doc := a.vectorize(text)

	scores, inx, _, err := a.clf.SafeProbScores(doc)
	if err != nil {
		// Underflow: posterior probabilities are unusable but the argmax
		// from log scores still is.
		_, inx, _ = a.clf.LogScores(doc)
		return Prediction{Category: a.Labels[inx], Confidence: 0}
	}
	return Prediction{Category: a.Labels[inx], Confidence: scores[inx]}
}

// vectorize tokenizes text and keeps only tokens in the trained vocabulary.
func (a *Artifact) vectorize(text string) []string {
	tokens := Tokenize(text)
	doc := tokens[:0]
	for _, tok := range tokens {
		if _, ok := a.vocabulary[tok]; ok {
			doc = append(doc, tok)
		}
	}
	return doc
}

// VocabularySize returns the number of features the artifact was trained on.
func (a *Artifact) VocabularySize() int {
	return len(a.vocabulary)
}
