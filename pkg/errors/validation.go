package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateRegionName validates a region name for safety and correctness.
// Region names become JSON object keys and store lookup keys, so the rules
// are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateRegionName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "region name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "region name too long (max 256 characters)")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "region name contains invalid control characters")
		}
	}

	return nil
}

// documentKeyRegex matches valid document store keys.
var documentKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateDocumentKey validates a key used to address a layout document in
// a store. Keys end up in file names, Redis keys, and Mongo document IDs,
// so path separators and traversal sequences are rejected outright.
func ValidateDocumentKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "document key cannot be empty")
	}

	if len(key) > 256 {
		return New(ErrCodeInvalidKey, "document key too long (max 256 characters)")
	}

	if strings.Contains(key, "..") {
		return New(ErrCodeInvalidKey, "document key cannot contain path traversal sequences (..)")
	}

	if !documentKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidKey, "invalid document key: %q", key)
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
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
