package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// Message represents a single ingested SMS. The text is immutable once
// stored; only the Corrected flag changes over its lifetime.
type Message struct {
	ReceivedAt time.Time
	CreatedAt  time.Time
	ID         string
	Text       string
	Owner      string
	Hash       string
	Corrected  bool
}

// GenerateHash creates a content hash for duplicate detection. Two messages
// with the same text always hash identically regardless of ingestion time.
func (m *Message) GenerateHash() string {
	hash := sha256.Sum256([]byte(m.Text))
	return fmt.Sprintf("%x", hash)
}

// Validate checks that the message is storable.
func (m *Message) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("message ID is required")
	}
	if strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("message text is required")
	}
	return nil
}
