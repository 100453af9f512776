package validation

import "strings"

// TitleValidator checks session titles and report filters
type TitleValidator struct {
	validator *Validator
}

// NewTitleValidator creates a title validator with a character limit
func NewTitleValidator(maxLength int) *TitleValidator {
	return &TitleValidator{validator: NewValidatorWithMaxLength(maxLength)}
}

// ValidateTitle validates a session title
func (tv *TitleValidator) ValidateTitle(title string) error {
	ve := NewValidationError()
	trimmed := strings.TrimSpace(title)

	if !tv.validator.IsNonEmptyString(trimmed) {
		ve.AddRequiredError("title")
		return ve
	}
	if !tv.validator.IsValidTitleLength(trimmed) {
		ve.AddInvalidLengthError("title", trimmed, tv.validator.TitleMaxLength())
	}
	if tv.validator.HasControlCharacters(trimmed) {
		ve.AddInvalidCharacterError("title", trimmed)
	}

	return ve.OrNil()
}

// CleanTitle trims title and returns it if valid
func (tv *TitleValidator) CleanTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return strings.TrimSpace(title), nil
}

// ValidateSearch validates the arguments of the history and stats commands
func (tv *TitleValidator) ValidateSearch(timeRange, text string, limit int) error {
	ve := NewValidationError()

	if timeRange != "" && !tv.validator.IsValidTimeShorthand(timeRange) {
		ve.AddInvalidFormatError("time_range", timeRange, "30m, 2h, 1d, 2w, 3mo or 1y")
	}
	if text != "" && tv.validator.HasControlCharacters(text) {
		ve.AddInvalidCharacterError("text", text)
	}
	if limit < 0 {
		ve.AddInvalidValueError("limit", limit, "must not be negative")
	}

	return ve.OrNil()
}
