package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Rule names the check a field failed
type Rule string

const (
	RuleRequired     Rule = "required"
	RuleFormat       Rule = "format"
	RuleLength       Rule = "length"
	RuleValue        Rule = "value"
	RuleControlChars Rule = "control_characters"
)

// FieldError is one failed rule for one field. Message is complete and names the field.
type FieldError struct {
	Field   string
	Rule    Rule
	Message string
	Value   any
}

func (fe FieldError) Error() string {
	return fe.Field + ": " + fe.Message
}

// ValidationError collects every field error found in one pass
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError returns an empty collector
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError checks if an error is, or wraps, a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// OrNil returns ve when it holds errors and nil otherwise
func (ve *ValidationError) OrNil() error {
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func (ve *ValidationError) add(field string, rule Rule, value any, format string, args ...any) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
		Value:   value,
	})
}

// AddRequiredError records a missing value
func (ve *ValidationError) AddRequiredError(field string) {
	ve.add(field, RuleRequired, nil, "%s is required", field)
}

// AddInvalidFormatError records a value that does not match expected
func (ve *ValidationError) AddInvalidFormatError(field string, value any, expected string) {
	ve.add(field, RuleFormat, value, "%s must look like %s", field, expected)
}

// AddInvalidLengthError records a value longer than max characters
func (ve *ValidationError) AddInvalidLengthError(field string, value any, max int) {
	ve.add(field, RuleLength, value, "%s must be at most %d characters long", field, max)
}

// AddInvalidValueError records an out-of-range value
func (ve *ValidationError) AddInvalidValueError(field string, value any, reason string) {
	ve.add(field, RuleValue, value, "%s %s", field, reason)
}

// AddInvalidCharacterError records a value containing control characters
func (ve *ValidationError) AddInvalidCharacterError(field string, value any) {
	ve.add(field, RuleControlChars, value, "%s must not contain control characters", field)
}

// GetUserFriendlyMessage returns a message suitable for the terminal
func (ve *ValidationError) GetUserFriendlyMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "Input validation failed"
	case 1:
		return ve.Errors[0].Message
	}

	var b strings.Builder
	b.WriteString("Multiple validation errors occurred:")
	for _, fe := range ve.Errors {
		b.WriteString("\n- ")
		b.WriteString(fe.Message)
	}
	return b.String()
}
