package model

import (
	"fmt"
	"time"
)

// Provenance indicates which stage of the hybrid pipeline produced a
// classification.
type Provenance string

// Provenance constants.
const (
	ProvenanceRule  Provenance = "rule"
	ProvenanceModel Provenance = "model"
)

// Classification represents a message after processing. It is derived fresh
// on every classify call and never cached across model reloads.
type Classification struct {
	ClassifiedAt time.Time
	MessageID    string
	Category     Category
	Provenance   Provenance
	Amount       *float64
	Confidence   float64
	NeedsReview  bool
}

// Validate checks the classification invariants before persistence.
func (c *Classification) Validate() error {
	if c.MessageID == "" {
		return fmt.Errorf("message ID is required")
	}
	if c.Category == "" {
		return fmt.Errorf("category is required")
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("confidence must be between 0 and 1, got %f", c.Confidence)
	}
	if c.Amount != nil && *c.Amount <= 0 {
		return fmt.Errorf("amount must be positive when present, got %f", *c.Amount)
	}
	switch c.Provenance {
	case ProvenanceRule, ProvenanceModel:
	default:
		return fmt.Errorf("invalid provenance: %q", c.Provenance)
	}
	return nil
}
