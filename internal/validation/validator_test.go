package validation

import (
	"strings"
	"testing"
	"time"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"   ", false},
		{"\t\n", false},
		{"Writing", true},
		{"  Writing  ", true},
	}

	for _, tt := range tests {
		if got := validator.IsNonEmptyString(tt.input); got != tt.expected {
			t.Errorf("IsNonEmptyString(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestValidator_IsValidTitleLength(t *testing.T) {
	validator := NewValidatorWithMaxLength(5)

	tests := []struct {
		input    string
		expected bool
	}{
		{"abcde", true},
		{"abcdef", false},
		{"  abcde  ", true},
		{"ééééé", true}, // five runes, ten bytes
	}

	for _, tt := range tests {
		if got := validator.IsValidTitleLength(tt.input); got != tt.expected {
			t.Errorf("IsValidTitleLength(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}

	if NewValidatorWithMaxLength(0).TitleMaxLength() != DefaultTitleMaxLength {
		t.Error("non-positive limit should fall back to the default")
	}
}

func TestValidator_HasControlCharacters(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		input    string
		expected bool
	}{
		{"Deep work, part 2", false},
		{`Quotes "are" fine`, false},
		{"line\nbreak", true},
		{"tab\there", true},
		{"bell\a", true},
	}

	for _, tt := range tests {
		if got := validator.HasControlCharacters(tt.input); got != tt.expected {
			t.Errorf("HasControlCharacters(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestValidator_IsValidTimeShorthand(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		input    string
		expected bool
	}{
		{"30m", true},
		{"2h", true},
		{"1d", true},
		{"2w", true},
		{"3mo", true},
		{"1y", true},
		{"0d", false},
		{"d", false},
		{"1x", false},
		{"-1d", false},
		{"1 d", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := validator.IsValidTimeShorthand(tt.input); got != tt.expected {
			t.Errorf("IsValidTimeShorthand(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestValidator_IsValidDateRange(t *testing.T) {
	validator := NewValidator()
	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	if !validator.IsValidDateRange(nil, &late) || !validator.IsValidDateRange(&early, nil) {
		t.Error("open-ended ranges are valid")
	}
	if !validator.IsValidDateRange(&early, &late) || !validator.IsValidDateRange(&early, &early) {
		t.Error("ordered ranges are valid")
	}
	if validator.IsValidDateRange(&late, &early) {
		t.Error("reversed range must be invalid")
	}
}

func TestTitleValidator_CleanTitle(t *testing.T) {
	tv := NewTitleValidator(10)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr Rule
	}{
		{"trims", "  Writing ", "Writing", ""},
		{"empty", "   ", "", RuleRequired},
		{"too long", strings.Repeat("a", 11), "", RuleLength},
		{"newline", "a\nb", "", RuleControlChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tv.CleanTitle(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("CleanTitle(%q) = %q, expected %q", tt.input, got, tt.want)
				}
				return
			}

			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if ve.Errors[0].Rule != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, ve.Errors[0].Rule)
			}
		})
	}
}

func TestTitleValidator_ValidateSearch(t *testing.T) {
	tv := NewTitleValidator(0)

	if err := tv.ValidateSearch("", "", 0); err != nil {
		t.Errorf("empty search should be valid: %v", err)
	}
	if err := tv.ValidateSearch("2w", "writing", 10); err != nil {
		t.Errorf("valid search rejected: %v", err)
	}

	err := tv.ValidateSearch("2x", "a\tb", -1)
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(ve.Errors), ve)
	}
}
