package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "pomo/internal/errors"
	"pomo/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "list sessions",
			err:       apperrors.NewValidationError("invalid input", nil),
			expected:  "failed to list sessions: invalid input",
		},
		{
			name:      "Storage error",
			operation: "read log",
			err:       apperrors.NewStorageError("read", errors.New("disk gone")),
			expected:  "failed to read log: Could not write the session log: disk gone",
		},
		{
			name:      "Field validation error",
			operation: "start",
			err: &validation.ValidationError{
				Errors: []validation.FieldError{{Field: "title", Message: "title is required"}},
			},
			expected: "failed to start: title is required",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_IsStorageError(t *testing.T) {
	eh := NewErrorHandler()

	if !eh.IsStorageError(apperrors.NewStorageError("append", nil)) {
		t.Error("storage error not recognised")
	}
	if !eh.IsStorageError(apperrors.NewPermissionError("append", "/tmp/log.csv")) {
		t.Error("permission error not recognised")
	}
	if eh.IsStorageError(errors.New("regular error")) {
		t.Error("regular error treated as storage error")
	}
}

func TestErrorHandler_IsInterrupted(t *testing.T) {
	eh := NewErrorHandler()

	if !eh.IsInterrupted(apperrors.NewInterruptedError("prompt", nil)) {
		t.Error("interrupted error not recognised")
	}
	if !eh.IsInterrupted(fmt.Errorf("wrapped: %w", context.Canceled)) {
		t.Error("cancelled context not recognised")
	}
	if eh.IsInterrupted(errors.New("regular error")) {
		t.Error("regular error treated as interrupt")
	}
}
