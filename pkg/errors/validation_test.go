package errors

import (
	"strings"
	"testing"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "n^2", false},
		{"with spaces", "3n^2 + 5n log n", false},
		{"tabs and newlines", "n\t+\n1", false},
		{"unicode", "n² · log n", false},
		{"at limit", strings.Repeat("n", MaxInputLength), false},
		{"empty", "", true},
		{"whitespace only", "   \t\n", true},
		{"too long", strings.Repeat("n", MaxInputLength+1), true},
		{"invalid utf8", "n\xff", true},
		{"control character", "n\x00+1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateInput(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeEmptyInput) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeEmptyInput)
			}
		})
	}
}
