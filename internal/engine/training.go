package engine

import (
	"github.com/akashdeo/smspend/internal/model"
)

// BuildTrainingSet merges corrections over the base labeled corpus. For
// every text with at least one correction the corrected label replaces the
// stored one, taking the most recent correction by timestamp with insertion
// order breaking ties. The result is deduplicated by text, keeping the base
// corpus order and appending correction-only texts after it.
func BuildTrainingSet(corpus []model.TrainingExample, corrections []model.Correction) []model.TrainingExample {
	latest := make(map[string]model.Correction, len(corrections))
	for _, c := range corrections {
		prev, ok := latest[c.Text]
		if !ok || c.CorrectedAt.After(prev.CorrectedAt) ||
			(c.CorrectedAt.Equal(prev.CorrectedAt) && c.Seq > prev.Seq) {
			latest[c.Text] = c
		}
	}

	out := make([]model.TrainingExample, 0, len(corpus)+len(latest))
	seen := make(map[string]int, len(corpus))

	for _, ex := range corpus {
		label := ex.Label
		if c, ok := latest[ex.Text]; ok {
			label = c.Category
		}
		if i, dup := seen[ex.Text]; dup {
			// Same text stored more than once: last stored label wins,
			// unless a correction already pinned it.
			if _, pinned := latest[ex.Text]; !pinned {
				out[i].Label = label
			}
			continue
		}
		seen[ex.Text] = len(out)
		out = append(out, model.TrainingExample{Text: ex.Text, Label: label})
	}

	// Corrections for texts absent from the base corpus still count as
	// ground truth.
	for _, c := range corrections {
		best := latest[c.Text]
		if best.ID != c.ID {
			continue
		}
		if _, dup := seen[c.Text]; dup {
			continue
		}
		seen[c.Text] = len(out)
		out = append(out, model.TrainingExample{Text: c.Text, Label: best.Category})
	}

	return out
}
