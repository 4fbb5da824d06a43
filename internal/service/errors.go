package service

import (
	"context"
	"errors"
	"fmt"

	"ragdemo/internal/storage"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a setup run does not exist.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when the vector store or a model provider fails.
	ErrExternalService = errors.New("external service error")
)

// ValidationError reports a rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// externalError marks err as a provider failure. Cancellation and deadline
// errors stay plain so callers do not report a client abort as an upstream fault.
func externalError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return WrapError(err, msg)
	}
	return fmt.Errorf("%s: %w: %w", msg, ErrExternalService, err)
}

// storageError maps storage.ErrNotFound onto ErrNotFound.
func storageError(err error, msg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	return WrapError(err, msg)
}
