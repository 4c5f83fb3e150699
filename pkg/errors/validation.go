package errors

import (
	"strings"
	"unicode"
)

// ValidateProjectName validates a project name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateProjectName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "project name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "project name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "project name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "project name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateLookupQuery validates a catalog lookup query string.
// Very short queries produce useless fuzzy matches, so a minimum
// length is enforced after trimming.
func ValidateLookupQuery(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return New(ErrCodeInvalidInput, "lookup query cannot be empty")
	}

	const minQueryLength = 3
	if len(trimmed) < minQueryLength {
		return New(ErrCodeInvalidInput, "lookup query too short (min %d characters): %q", minQueryLength, query)
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "lookup query contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
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
