package errors

import (
	"strings"
	"unicode"
)

// ValidateLabel validates a node or cluster display label.
//
// Labels may span multiple lines (the renderer honors embedded newlines)
// but must not be empty and must not contain other control characters.
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "label cannot be empty")
	}

	if len(label) > 256 {
		return New(ErrCodeInvalidLabel, "label too long (max 256 characters)")
	}

	for _, r := range label {
		if r == '\n' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates an output file path for safety.
// It prevents path traversal and rejects paths that cannot name a file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "output path cannot contain path traversal sequences (..)")
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}

	return nil
}

// ValidateColor validates an edge or background color value.
// Graphviz accepts either named colors or #RRGGBB / #RRGGBBAA hex values;
// this check only rejects values that are certain to be unusable.
func ValidateColor(color string) error {
	if color == "" {
		return nil // empty means "use the default"
	}

	if strings.HasPrefix(color, "#") {
		hex := color[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return New(ErrCodeInvalidStyle, "invalid hex color %q", color)
		}
		for _, r := range hex {
			if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
				return New(ErrCodeInvalidStyle, "invalid hex color %q", color)
			}
		}
		return nil
	}

	for _, r := range color {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return New(ErrCodeInvalidStyle, "invalid color name %q", color)
		}
	}
	return nil
}
