package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultTitleMaxLength applies when no limit is configured
const DefaultTitleMaxLength = 200

var timeShorthandRegex = regexp.MustCompile(`^(\d+)(mo|m|h|d|w|y)$`)

// Validator provides common validation utilities
type Validator struct {
	titleMaxLength int
}

// NewValidator creates a validator with the default title limit
func NewValidator() *Validator {
	return NewValidatorWithMaxLength(DefaultTitleMaxLength)
}

// NewValidatorWithMaxLength creates a validator with a custom title limit
func NewValidatorWithMaxLength(max int) *Validator {
	if max <= 0 {
		max = DefaultTitleMaxLength
	}
	return &Validator{titleMaxLength: max}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTitleLength counts characters, not bytes
func (v *Validator) IsValidTitleLength(title string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(title)) <= v.titleMaxLength
}

// HasControlCharacters reports newlines, tabs and other control runes, which
// would break the one-row-per-session log layout.
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// IsValidTimeShorthand checks forms like 30m, 2h, 1d, 2w, 3mo, 1y
func (v *Validator) IsValidTimeShorthand(shorthand string) bool {
	matches := timeShorthandRegex.FindStringSubmatch(shorthand)
	if matches == nil {
		return false
	}
	value, err := strconv.Atoi(matches[1])
	return err == nil && value > 0
}

// IsValidDateRange checks that an optional range is ordered
func (v *Validator) IsValidDateRange(since, until *time.Time) bool {
	if since == nil || until == nil {
		return true
	}
	return !since.After(*until)
}

// TitleMaxLength returns the configured title limit
func (v *Validator) TitleMaxLength() int {
	return v.titleMaxLength
}
