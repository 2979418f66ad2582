package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateScaleFactor rejects scale factors that cannot be applied as a
// positive multiplier. Zero is accepted and means "use the default".
func ValidateScaleFactor(s float64) error {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return New(ErrCodeInvalidScale, "scale factor must be a finite number")
	}
	if s < 0 {
		return New(ErrCodeInvalidScale, "scale factor must be positive, got %g", s)
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
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

	for _, seg := range strings.Split(strings.ReplaceAll(path, "\\", "/"), "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidateReportID validates an archive report identifier.
// IDs are UUID strings; anything else is rejected before touching storage.
func ValidateReportID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "report id cannot be empty")
	}
	if len(id) != 36 {
		return New(ErrCodeInvalidInput, "malformed report id: %q", id)
	}
	for i, r := range id {
		switch i {
		case 8, 13, 18, 23:
			if r != '-' {
				return New(ErrCodeInvalidInput, "malformed report id: %q", id)
			}
		default:
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return New(ErrCodeInvalidInput, "malformed report id: %q", id)
			}
		}
	}
	return nil
}
