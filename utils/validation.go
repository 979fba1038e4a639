package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Add records a failure for field when msg is not empty
func (e *FieldValidationErrors) Add(field, msg string) {
	if msg != "" {
		*e = append(*e, FieldValidationError{Field: field, Message: msg})
	}
}

var (
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	jsEventRegex = regexp.MustCompile(`on\w+="[^"]*"`)
	dataURIRegex = regexp.MustCompile(`data:[^;]+;base64,[^"']+`)

	xssPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)vbscript:`),
		regexp.MustCompile(`(?i)\bon(load|error|click|mouseover)\s*=`),
		regexp.MustCompile(`(?i)eval\(`),
		regexp.MustCompile(`(?i)document\.(cookie|write)`),
	}
)

// SanitizeString strips markup from user supplied text
func SanitizeString(input string) string {
	sanitized := htmlTagRegex.ReplaceAllString(input, "")
	sanitized = jsEventRegex.ReplaceAllString(sanitized, "")
	sanitized = dataURIRegex.ReplaceAllString(sanitized, "")
	return strings.TrimSpace(html.UnescapeString(sanitized))
}

// ValidateXSS reports whether input is free of common script injection patterns
func ValidateXSS(input string) (bool, string) {
	for _, p := range xssPatterns {
		if p.MatchString(input) {
			return false, "contains disallowed markup"
		}
	}
	return true, ""
}

// ValidateStringLength checks the trimmed length in characters, so Arabic
// text counts the same as Latin text
func ValidateStringLength(str string, min, max int) error {
	length := utf8.RuneCountInString(strings.TrimSpace(str))
	if length < min {
		return fmt.Errorf("must be at least %d characters long", min)
	}
	if length > max {
		return fmt.Errorf("must not exceed %d characters", max)
	}
	return nil
}

// ValidateText runs the XSS and length checks on one free text field
func ValidateText(input string, min, max int) string {
	if ok, msg := ValidateXSS(input); !ok {
		return msg
	}
	if err := ValidateStringLength(input, min, max); err != nil {
		return err.Error()
	}
	return ""
}
