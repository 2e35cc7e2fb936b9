package model

import (
	"fmt"
	"time"
)

// Correction is a user-supplied ground-truth label for a previously
// classified message. Corrections are append-only; when several exist for
// the same text, the latest by CorrectedAt wins, with Seq (insertion order)
// breaking ties.
type Correction struct {
	CorrectedAt time.Time
	CreatedAt   time.Time
	MessageID   string
	Text        string
	Category    Category
	ID          int64
	Seq         int64
}

// Validate checks that the correction is storable.
func (c *Correction) Validate() error {
	if c.MessageID == "" {
		return fmt.Errorf("message ID is required")
	}
	if c.Text == "" {
		return fmt.Errorf("message text is required")
	}
	if !c.Category.IsKnown() {
		return fmt.Errorf("unknown category: %q", c.Category)
	}
	return nil
}

// TrainingExample is a (text, label) pair in the merged training corpus.
type TrainingExample struct {
	Text  string
	Label Category
}
