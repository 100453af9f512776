package errors

import "strings"

// ErrorType is the category of an AppError
type ErrorType uint8

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeInvalidInput
	ErrorTypeStorage
	ErrorTypeNotification
	ErrorTypeInterrupted
	ErrorTypePermission
)

var errorTypeNames = [...]string{
	ErrorTypeValidation:   "validation",
	ErrorTypeInvalidInput: "invalid_input",
	ErrorTypeStorage:      "storage",
	ErrorTypeNotification: "notification",
	ErrorTypeInterrupted:  "interrupted",
	ErrorTypePermission:   "permission",
}

// String returns the snake_case name of the type
func (et ErrorType) String() string {
	if int(et) < len(errorTypeNames) {
		return errorTypeNames[et]
	}
	return "unknown"
}

// AppError is the structured error passed between packages. Message is written
// for the user; Context carries details for debug logs.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]any
}

// Error renders "type: message" followed by the cause, if any
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes the cause to errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError of the same type and code
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type && e.Code == t.Code
}

// IsType reports whether e is of errorType
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext records a detail and returns e for chaining
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any, 1)
	}
	e.Context[key] = value
	return e
}

// GetContext returns a detail recorded with WithContext
func (e *AppError) GetContext(key string) (any, bool) {
	value, ok := e.Context[key]
	return value, ok
}
