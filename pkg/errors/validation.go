package errors

import (
	"strings"
	"unicode"
)

// ValidateTitle validates a document or node title.
//
// The validation rules are intentionally conservative:
//   - No empty titles
//   - No control characters
//   - Maximum length of 256 characters
func ValidateTitle(title string) error {
	if title == "" {
		return New(ErrCodeInvalidInput, "title cannot be empty")
	}

	if len(title) > 256 {
		return New(ErrCodeInvalidInput, "title too long (max 256 characters)")
	}

	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "title contains invalid control characters")
		}
	}

	return nil
}

// ValidateFieldKey validates a node field key.
// Keys are lowercase snake_case identifiers; the per-kind closed key sets
// are enforced separately by the document package.
func ValidateFieldKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidField, "field key cannot be empty")
	}

	if len(key) > 64 {
		return New(ErrCodeInvalidField, "field key too long (max 64 characters)")
	}

	for _, r := range key {
		if !(r == '_' || unicode.IsLower(r) || unicode.IsDigit(r)) {
			return New(ErrCodeInvalidField, "invalid field key: %q", key)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
// Used for share-link base URLs and content URL fields.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
