package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrInterrupted is the sentinel matched by errors.Is for any interrupt error.
var ErrInterrupted = &AppError{Type: ErrorTypeInterrupted, Code: "INTERRUPTED", Message: "interrupted"}

// newError builds an AppError. kv lists context keys and values in pairs.
func newError(t ErrorType, code, message string, cause error, kv ...any) *AppError {
	e := &AppError{Type: t, Message: message, Code: code, Cause: cause, Context: make(map[string]any, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		e.Context[kv[i].(string)] = kv[i+1]
	}
	return e
}

// NewValidationError reports input that failed validation. message is shown to the user.
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, "VALIDATION_FAILED", message, cause)
}

// NewInvalidInputError reports a single unusable argument or flag value
func NewInvalidInputError(field string, value any, reason string) *AppError {
	return newError(ErrorTypeInvalidInput, "INVALID_INPUT",
		fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		"field", field, "value", value, "reason", reason)
}

// NewStorageError reports a failed session log or report index operation
func NewStorageError(operation string, cause error) *AppError {
	return newError(ErrorTypeStorage, "STORAGE_ERROR",
		"storage operation failed: "+operation, cause,
		"operation", operation)
}

// NewNotificationError reports a notifier backend that could not deliver an alert
func NewNotificationError(backend string, cause error) *AppError {
	return newError(ErrorTypeNotification, "NOTIFICATION_FAILED",
		"notification failed: "+backend, cause,
		"backend", backend)
}

// NewInterruptedError reports Ctrl+C, a quit key or a cancelled context during stage
func NewInterruptedError(stage string, cause error) *AppError {
	return newError(ErrorTypeInterrupted, "INTERRUPTED",
		"interrupted during "+stage, cause,
		"stage", stage)
}

// NewPermissionError reports a file the process may not write
func NewPermissionError(operation string, resource string) *AppError {
	return newError(ErrorTypePermission, "PERMISSION_DENIED",
		fmt.Sprintf("permission denied for %s on %s", operation, resource), nil,
		"operation", operation, "resource", resource)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsInterrupted reports whether err ends the program the way Ctrl+C does.
// A cancelled context counts as an interrupt.
func IsInterrupted(err error) bool {
	if err == nil {
		return false
	}
	if IsErrorType(err, ErrorTypeInterrupted) {
		return true
	}
	return errors.Is(err, context.Canceled)
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation:
			return appErr.Message
		case ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeStorage:
			if appErr.Cause != nil {
				return fmt.Sprintf("Could not write the session log: %v", appErr.Cause)
			}
			return "Could not write the session log."
		case ErrorTypeNotification:
			return "Desktop notification unavailable."
		case ErrorTypeInterrupted:
			return "Interrupted."
		case ErrorTypePermission:
			return appErr.Message
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeInvalidInput, ErrorTypeInterrupted:
			return false // expected outcomes of user actions
		case ErrorTypeStorage, ErrorTypeNotification, ErrorTypePermission:
			return true
		default:
			return true
		}
	}
	return true
}
