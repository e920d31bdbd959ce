package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// MaxInputBytes bounds the size of a document accepted for rendering.
// This is a debugging aid, not a bulk converter.
const MaxInputBytes = 4 << 20

// ValidateInput checks that a document is non-empty, within [MaxInputBytes]
// and free of NUL bytes.
func ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return New(ErrCodeInvalidInput, "input cannot be empty")
	}
	if len(input) > MaxInputBytes {
		return New(ErrCodeInvalidInput, "input too large (max %d bytes)", MaxInputBytes)
	}
	if strings.ContainsRune(input, '\x00') {
		return New(ErrCodeInvalidInput, "input contains NUL bytes")
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
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

// ValidateBaseURL checks that an explicit base is an absolute IRI.
// An empty base is valid and means "derive one from the document".
func ValidateBaseURL(base string) error {
	if base == "" {
		return nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return Wrap(ErrCodeInvalidBase, err, "invalid base URL %q", base)
	}
	if !u.IsAbs() {
		return New(ErrCodeInvalidBase, "base URL must be absolute: %q", base)
	}
	return nil
}

// ValidateTarget checks a highlight target. Kind must be "entity" or
// "property" and the URI must be a non-empty identifier without whitespace
// or control characters. An empty kind with an empty URI means no target.
func ValidateTarget(kind, uri string) error {
	if kind == "" && uri == "" {
		return nil
	}
	if kind != "entity" && kind != "property" {
		return New(ErrCodeInvalidTarget, "target type must be 'entity' or 'property', got %q", kind)
	}
	if uri == "" {
		return New(ErrCodeInvalidTarget, "target uri cannot be empty")
	}
	for _, r := range uri {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidTarget, "target uri contains whitespace or control characters")
		}
	}
	return nil
}
