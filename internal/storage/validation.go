package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akashdeo/smspend/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateMessages(messages []model.Message) error {
	if messages == nil {
		return fmt.Errorf("%w: messages", ErrNilParameter)
	}
	if len(messages) == 0 {
		return fmt.Errorf("%w: messages", ErrEmptySlice)
	}
	for i := range messages {
		if err := messages[i].Validate(); err != nil {
			return fmt.Errorf("message at index %d: %w", i, err)
		}
	}
	return nil
}

func validateClassification(c *model.Classification) error {
	if c == nil {
		return fmt.Errorf("%w: classification", ErrNilParameter)
	}
	return c.Validate()
}

func validateCorrection(c *model.Correction) error {
	if c == nil {
		return fmt.Errorf("%w: correction", ErrNilParameter)
	}
	return c.Validate()
}
