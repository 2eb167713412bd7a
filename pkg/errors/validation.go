package errors

import (
	"strings"
	"unicode"
)

// ValidateChoice checks that value is one of allowed.
// The returned error carries code and names both the rejected token and the
// accepted set, so callers can surface it to users unchanged.
//
//	err := ValidateChoice(ErrCodeInvalidFormat, "format", "gif", []string{"svg", "png"})
//	// INVALID_FORMAT: invalid format: "gif" (must be one of: svg, png)
func ValidateChoice(code Code, kind, value string, allowed []string) error {
	for _, a := range allowed {
		if a == value {
			return nil
		}
	}
	return New(code, "invalid %s: %q (must be one of: %s)", kind, value, strings.Join(allowed, ", "))
}

// ValidateOutputPath validates a file path the CLI is about to write to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Cannot name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory: %s", path)
	}

	return nil
}

// ValidateNodeLabel rejects labels that cannot be embedded in SVG text or
// DOT identifiers. Renderers call it before emitting user data.
func ValidateNodeLabel(label string) error {
	for _, r := range label {
		if r == '\x00' || (unicode.IsControl(r) && r != '\n' && r != '\t') {
			return New(ErrCodeInvalidInput, "label contains control characters: %q", label)
		}
	}
	return nil
}
