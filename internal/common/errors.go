// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Model errors.
	ErrNoModel          = errors.New("no model artifact loaded")
	ErrCorruptArtifact  = errors.New("model artifact corrupted")
	ErrArtifactNotFound = errors.New("model artifact not found")

	// Retraining errors.
	ErrNoTrainingData    = errors.New("no training data available")
	ErrTooFewClasses     = errors.New("training data has fewer than two classes")
	ErrRetrainInProgress = errors.New("retrain already in progress")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrMessageNotFound   = errors.New("message not found")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
