package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// blockIDRegex matches IDs that survive the whitespace-separated CBL text format.
var blockIDRegex = regexp.MustCompile(`^[A-Za-z0-9_.\-/\[\]:]+$`)

// ValidateBlockID validates a block identifier.
//
// IDs end up as the first field of CBL checkpoint lines, so they must not
// contain whitespace or start with the comment marker.
func ValidateBlockID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidBenchmark, "block ID cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidBenchmark, "block ID too long (max 256 characters)")
	}
	if id == "die" {
		return New(ErrCodeInvalidBenchmark, "block ID %q is reserved", id)
	}
	if !blockIDRegex.MatchString(id) {
		return New(ErrCodeInvalidBenchmark, "invalid block ID: %q", id)
	}
	return nil
}

// ValidateDimensions checks that a block outline is finite and positive.
func ValidateDimensions(id string, w, h float64) error {
	for _, v := range []float64{w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidBenchmark, "block %s: dimensions must be positive, got %gx%g", id, w, h)
		}
	}
	return nil
}

// ValidateAspectRatio checks a soft block's aspect-ratio range.
func ValidateAspectRatio(id string, lo, hi float64) error {
	if lo <= 0 || hi <= 0 || lo > hi {
		return New(ErrCodeInvalidBenchmark, "block %s: invalid aspect ratio range [%g, %g]", id, lo, hi)
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
