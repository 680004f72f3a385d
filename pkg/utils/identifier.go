package utils

import (
	"strings"
	"unicode"
)

const MaxIdentifierLength = 254

// ValidateIdentifier checks that an account identifier looks like an email address.
func ValidateIdentifier(identifier string) error {
	if identifier == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}
	if len(identifier) > MaxIdentifierLength {
		return &ValidationError{Field: "email", Message: "Email must be at most 254 characters"}
	}
	if strings.IndexFunc(identifier, unicode.IsSpace) != -1 {
		return &ValidationError{Field: "email", Message: "Email must not contain spaces"}
	}
	at := strings.LastIndex(identifier, "@")
	if at <= 0 || at == len(identifier)-1 {
		return &ValidationError{Field: "email", Message: "Email must look like name@domain"}
	}
	return nil
}

// NormalizeIdentifier trims surrounding whitespace. Case is kept so existing
// records keep matching.
func NormalizeIdentifier(identifier string) string {
	return strings.TrimSpace(identifier)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
