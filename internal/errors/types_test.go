package errors

import (
	"errors"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"Storage", ErrorTypeStorage, "storage"},
		{"Notification", ErrorTypeNotification, "notification"},
		{"Interrupted", ErrorTypeInterrupted, "interrupted"},
		{"Permission", ErrorTypePermission, "permission"},
		{"Unknown", ErrorType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.errorType.String()
			if result != tt.expected {
				t.Errorf("ErrorType.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "Error without cause",
			appError: &AppError{
				Type:    ErrorTypeValidation,
				Message: "title too long",
			},
			expected: "validation: title too long",
		},
		{
			name: "Error with cause",
			appError: &AppError{
				Type:    ErrorTypeStorage,
				Message: "append failed",
				Cause:   errors.New("disk full"),
			},
			expected: "storage: append failed: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("AppError.Error() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	appErr := &AppError{Type: ErrorTypeStorage, Message: "append failed", Cause: cause}

	if !errors.Is(appErr, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestAppError_Is(t *testing.T) {
	err := NewInterruptedError("countdown", nil)

	if !errors.Is(err, ErrInterrupted) {
		t.Error("interrupted errors should match ErrInterrupted")
	}
	if errors.Is(NewStorageError("append", nil), ErrInterrupted) {
		t.Error("storage errors should not match ErrInterrupted")
	}
}

func TestAppError_Context(t *testing.T) {
	appErr := &AppError{Type: ErrorTypeValidation, Message: "bad"}

	if _, ok := appErr.GetContext("field"); ok {
		t.Error("GetContext on empty context should report missing key")
	}

	appErr.WithContext("field", "title")
	value, ok := appErr.GetContext("field")
	if !ok || value != "title" {
		t.Errorf("GetContext(field) = %v, %v; want title, true", value, ok)
	}
}
