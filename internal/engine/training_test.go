package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akashdeo/smspend/internal/model"
)

func correctionAt(id int64, text string, cat model.Category, at time.Time) model.Correction {
	return model.Correction{
		ID:          id,
		Seq:         id,
		MessageID:   "msg",
		Text:        text,
		Category:    cat,
		CorrectedAt: at,
	}
}

func TestBuildTrainingSet(t *testing.T) {
	base := time.Date(2025, 12, 2, 10, 0, 0, 0, time.UTC)

	corpus := []model.TrainingExample{
		{Text: "Rs.500 debited at ATM", Label: model.CategoryDebit},
		{Text: "Rs.349 paid to Swiggy", Label: model.CategoryDebit},
		{Text: "Rs.2500 credited by NEFT", Label: model.CategoryCredit},
	}

	tests := []struct {
		name        string
		corrections []model.Correction
		want        []model.TrainingExample
	}{
		{
			name:        "no corrections keeps corpus as is",
			corrections: nil,
			want:        corpus,
		},
		{
			name: "correction replaces stored label",
			corrections: []model.Correction{
				correctionAt(1, "Rs.349 paid to Swiggy", model.CategoryShoppingUPI, base),
			},
			want: []model.TrainingExample{
				{Text: "Rs.500 debited at ATM", Label: model.CategoryDebit},
				{Text: "Rs.349 paid to Swiggy", Label: model.CategoryShoppingUPI},
				{Text: "Rs.2500 credited by NEFT", Label: model.CategoryCredit},
			},
		},
		{
			name: "latest correction wins",
			corrections: []model.Correction{
				correctionAt(1, "Rs.349 paid to Swiggy", model.CategoryShoppingUPI, base),
				correctionAt(2, "Rs.349 paid to Swiggy", model.CategoryOther, base.Add(time.Hour)),
			},
			want: []model.TrainingExample{
				{Text: "Rs.500 debited at ATM", Label: model.CategoryDebit},
				{Text: "Rs.349 paid to Swiggy", Label: model.CategoryOther},
				{Text: "Rs.2500 credited by NEFT", Label: model.CategoryCredit},
			},
		},
		{
			name: "equal timestamps broken by insertion order",
			corrections: []model.Correction{
				correctionAt(1, "Rs.349 paid to Swiggy", model.CategoryShoppingUPI, base),
				correctionAt(2, "Rs.349 paid to Swiggy", model.CategoryOther, base),
			},
			want: []model.TrainingExample{
				{Text: "Rs.500 debited at ATM", Label: model.CategoryDebit},
				{Text: "Rs.349 paid to Swiggy", Label: model.CategoryOther},
				{Text: "Rs.2500 credited by NEFT", Label: model.CategoryCredit},
			},
		},
		{
			name: "correction for unseen text is appended",
			corrections: []model.Correction{
				correctionAt(1, "PNR 1234567890 CNF train 12951", model.CategoryTravel, base),
			},
			want: []model.TrainingExample{
				{Text: "Rs.500 debited at ATM", Label: model.CategoryDebit},
				{Text: "Rs.349 paid to Swiggy", Label: model.CategoryDebit},
				{Text: "Rs.2500 credited by NEFT", Label: model.CategoryCredit},
				{Text: "PNR 1234567890 CNF train 12951", Label: model.CategoryTravel},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildTrainingSet(corpus, tt.corrections)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildTrainingSet_DeduplicatesByText(t *testing.T) {
	corpus := []model.TrainingExample{
		{Text: "Rs.500 debited at ATM", Label: model.CategoryDebit},
		{Text: "Rs.500 debited at ATM", Label: model.CategoryOther},
		{Text: "Rs.2500 credited by NEFT", Label: model.CategoryCredit},
	}

	got := BuildTrainingSet(corpus, nil)
	assert.Equal(t, []model.TrainingExample{
		// Last stored label wins for a repeated text.
		{Text: "Rs.500 debited at ATM", Label: model.CategoryOther},
		{Text: "Rs.2500 credited by NEFT", Label: model.CategoryCredit},
	}, got)
}

func TestBuildTrainingSet_CorrectionPinsDuplicatedText(t *testing.T) {
	base := time.Date(2025, 12, 2, 10, 0, 0, 0, time.UTC)
	corpus := []model.TrainingExample{
		{Text: "Rs.500 debited at ATM", Label: model.CategoryDebit},
		{Text: "Rs.500 debited at ATM", Label: model.CategoryOther},
	}
	corrections := []model.Correction{
		correctionAt(1, "Rs.500 debited at ATM", model.CategoryShoppingUPI, base),
	}

	got := BuildTrainingSet(corpus, corrections)
	assert.Equal(t, []model.TrainingExample{
		{Text: "Rs.500 debited at ATM", Label: model.CategoryShoppingUPI},
	}, got)
}

func TestBuildTrainingSet_EmptyInputs(t *testing.T) {
	assert.Empty(t, BuildTrainingSet(nil, nil))

	base := time.Date(2025, 12, 2, 10, 0, 0, 0, time.UTC)
	got := BuildTrainingSet(nil, []model.Correction{
		correctionAt(1, "Rs.500 debited at ATM", model.CategoryDebit, base),
	})
	assert.Equal(t, []model.TrainingExample{
		{Text: "Rs.500 debited at ATM", Label: model.CategoryDebit},
	}, got)
}
