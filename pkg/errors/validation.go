package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxInputLength is the longest expression, in bytes, the analyzer accepts.
const MaxInputLength = 1024

// ValidateInput rejects expressions that cannot be analyzed at all, before
// any stage of the pipeline runs.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only input
//   - Valid UTF-8 only
//   - No control characters other than ordinary whitespace
//   - Maximum length of [MaxInputLength] bytes
//
// Grammar-level problems are reported later by the lexer and parser.
func ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return New(ErrCodeEmptyInput, "input is empty")
	}

	if len(input) > MaxInputLength {
		return New(ErrCodeEmptyInput, "input too long (max %d bytes)", MaxInputLength)
	}

	if !utf8.ValidString(input) {
		return New(ErrCodeEmptyInput, "input is not valid UTF-8")
	}

	for _, r := range input {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return New(ErrCodeEmptyInput, "input contains invalid control characters")
		}
	}

	return nil
}
