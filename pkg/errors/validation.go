package errors

import (
	"strings"
	"unicode"
)

// maxPathLength bounds document paths accepted from users and HTTP clients.
const maxPathLength = 4096

// ValidatePath validates a document path given on the command line or
// chosen in the explorer.
//
// Validation rules:
//   - Path cannot be empty or blank
//   - Maximum length of 4096 bytes
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateOneOf checks that value is one of allowed, returning an error with
// the given code that lists the accepted values otherwise.
func ValidateOneOf(code Code, what, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(code, "invalid %s %q (want one of: %s)", what, value, strings.Join(allowed, ", "))
}
