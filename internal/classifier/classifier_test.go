package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashdeo/smspend/internal/common"
	"github.com/akashdeo/smspend/internal/model"
)

func trainingCorpus() []model.TrainingExample {
	return []model.TrainingExample{
		{Text: "Rs.500 debited from A/c X1234 at ATM", Label: model.CategoryDebit},
		{Text: "INR 1200 debited towards electricity bill", Label: model.CategoryDebit},
		{Text: "Rs.89 debited, card swiped at store", Label: model.CategoryDebit},
		{Text: "Rs.2500 credited to A/c X1234 by NEFT", Label: model.CategoryCredit},
		{Text: "salary credited to your account", Label: model.CategoryCredit},
		{Text: "Rs.300 credited via IMPS transfer", Label: model.CategoryCredit},
		{Text: "OTP for login is 445566 do not share", Label: model.CategoryAccountService},
		{Text: "use OTP 991122 to complete login", Label: model.CategoryAccountService},
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "unigrams and bigrams",
			text: "Rs.500 debited today",
			want: []string{"rs", "500", "debited", "today", "rs 500", "500 debited", "debited today"},
		},
		{
			name: "single char tokens dropped",
			text: "A c X1 debited",
			want: []string{"x1", "debited", "x1 debited"},
		},
		{
			name: "empty text",
			text: "   ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestTrain_Predict(t *testing.T) {
	artifact, err := Train(context.Background(), trainingCorpus(), DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, artifact)

	assert.NotEmpty(t, artifact.Version)
	assert.Equal(t, len(trainingCorpus()), artifact.ExampleCount)
	assert.ElementsMatch(t,
		[]model.Category{model.CategoryAccountService, model.CategoryCredit, model.CategoryDebit},
		artifact.Labels)
	assert.Positive(t, artifact.VocabularySize())

	tests := []struct {
		text string
		want model.Category
	}{
		{"Rs.75 debited from A/c at ATM", model.CategoryDebit},
		{"amount credited by NEFT transfer", model.CategoryCredit},
		{"OTP 121212 for login", model.CategoryAccountService},
	}
	for _, tt := range tests {
		pred := artifact.Predict(tt.text)
		assert.Equal(t, tt.want, pred.Category, "text %q", tt.text)
		assert.GreaterOrEqual(t, pred.Confidence, 0.0)
		assert.LessOrEqual(t, pred.Confidence, 1.0)
		assert.Contains(t, artifact.Labels, pred.Category)
	}
}

func TestTrain_Deterministic(t *testing.T) {
	ctx := context.Background()
	a1, err := Train(ctx, trainingCorpus(), DefaultConfig())
	require.NoError(t, err)
	a2, err := Train(ctx, trainingCorpus(), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, a1.Labels, a2.Labels)
	assert.Equal(t, a1.VocabularySize(), a2.VocabularySize())

	for _, ex := range trainingCorpus() {
		p1 := a1.Predict(ex.Text)
		p2 := a2.Predict(ex.Text)
		assert.Equal(t, p1.Category, p2.Category, "text %q", ex.Text)
	}
}

func TestTrain_Failures(t *testing.T) {
	ctx := context.Background()

	_, err := Train(ctx, nil, DefaultConfig())
	assert.ErrorIs(t, err, common.ErrNoTrainingData)

	oneClass := []model.TrainingExample{
		{Text: "Rs.500 debited", Label: model.CategoryDebit},
		{Text: "Rs.600 debited", Label: model.CategoryDebit},
	}
	_, err = Train(ctx, oneClass, DefaultConfig())
	assert.ErrorIs(t, err, common.ErrTooFewClasses)
}

func TestTrain_HonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Train(ctx, trainingCorpus(), DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTrain_MaxFeaturesCapsVocabulary(t *testing.T) {
	artifact, err := Train(context.Background(), trainingCorpus(), Config{MaxFeatures: 10, MinDocFreq: 1})
	require.NoError(t, err)
	assert.LessOrEqual(t, artifact.VocabularySize(), 10)
}

func TestPredict_Fallbacks(t *testing.T) {
	var nilArtifact *Artifact
	pred := nilArtifact.Predict("Rs.500 debited")
	assert.Equal(t, model.CategoryUnknown, pred.Category)
	assert.Zero(t, pred.Confidence)

	artifact, err := Train(context.Background(), trainingCorpus(), DefaultConfig())
	require.NoError(t, err)

	pred = artifact.Predict("   ")
	assert.Equal(t, model.CategoryUnknown, pred.Category)
	assert.Zero(t, pred.Confidence)
}

func TestSaveLoadArtifact(t *testing.T) {
	dir := t.TempDir()

	artifact, err := Train(context.Background(), trainingCorpus(), DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, SaveArtifact(artifact, dir))

	loaded, err := LoadArtifact(dir)
	require.NoError(t, err)

	assert.Equal(t, artifact.Version, loaded.Version)
	assert.Equal(t, artifact.Labels, loaded.Labels)
	assert.Equal(t, artifact.ExampleCount, loaded.ExampleCount)
	assert.Equal(t, artifact.VocabularySize(), loaded.VocabularySize())

	for _, ex := range trainingCorpus() {
		assert.Equal(t, artifact.Predict(ex.Text).Category, loaded.Predict(ex.Text).Category)
	}
}

func TestLoadArtifact_Missing(t *testing.T) {
	_, err := LoadArtifact(t.TempDir())
	assert.ErrorIs(t, err, common.ErrArtifactNotFound)
}
