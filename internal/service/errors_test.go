package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ragdemo/internal/storage"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "question", Message: "cannot be empty"}
	if got, want := err.Error(), "validation error on field question: cannot be empty"; got != want {
		t.Errorf("ValidationError.Error() = %v, want %v", got, want)
	}
}

func TestWrapError(t *testing.T) {
	if got := WrapError(nil, "context"); got != nil {
		t.Errorf("WrapError(nil) = %v, want nil", got)
	}

	cause := errors.New("disk I/O error")
	got := WrapError(cause, "failed to list setup runs")
	if got.Error() != "failed to list setup runs: disk I/O error" {
		t.Errorf("WrapError() = %v", got)
	}
	if !errors.Is(got, cause) {
		t.Error("WrapError() should wrap the cause")
	}
}

func TestExternalError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantExternal bool
	}{
		{name: "provider failure", err: errors.New("rpc error: code = Unavailable"), wantExternal: true},
		{name: "wrapped provider failure", err: fmt.Errorf("failed to query points: %w", errors.New("timeout")), wantExternal: true},
		{name: "canceled", err: context.Canceled, wantExternal: false},
		{name: "deadline", err: fmt.Errorf("embed: %w", context.DeadlineExceeded), wantExternal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := externalError(tt.err, "failed to answer question")
			if errors.Is(got, ErrExternalService) != tt.wantExternal {
				t.Errorf("errors.Is(ErrExternalService) = %v, want %v", !tt.wantExternal, tt.wantExternal)
			}
			if !errors.Is(got, tt.err) {
				t.Error("externalError() should keep the cause")
			}
		})
	}

	if externalError(nil, "msg") != nil {
		t.Error("externalError(nil) should be nil")
	}
}

func TestStorageError(t *testing.T) {
	notFound := storageError(fmt.Errorf("get run: %w", storage.ErrNotFound), "failed to get setup run")
	if !errors.Is(notFound, ErrNotFound) {
		t.Errorf("storageError() = %v, want ErrNotFound", notFound)
	}

	other := storageError(errors.New("locked"), "failed to get setup run")
	if errors.Is(other, ErrNotFound) {
		t.Error("storageError() should only map storage.ErrNotFound")
	}
}
