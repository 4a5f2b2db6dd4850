package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestScanExpressions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "n^2\n", []string{"n^2"}},
		{"no trailing newline", "n\n2^n", []string{"n", "2^n"}},
		{"comments and blanks", "# header\n\n  n^2 + n  \n\t\n# n^3\nlog(n)\n", []string{"n^2 + n", "log(n)"}},
		{"crlf", "n\r\n2^n\r\n", []string{"n", "2^n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scanExpressions(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("scanExpressions: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("scanExpressions = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadBatchInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.txt")
	if err := os.WriteFile(path, []byte("n\n# skip\nn^2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readBatchInput(path, strings.NewReader("ignored\n"))
	if err != nil {
		t.Fatalf("readBatchInput: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"n", "n^2"}) {
		t.Errorf("file input = %q", got)
	}

	got, err = readBatchInput("-", strings.NewReader("2^n\n"))
	if err != nil {
		t.Fatalf("readBatchInput stdin: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"2^n"}) {
		t.Errorf("stdin input = %q", got)
	}

	if _, err := readBatchInput(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("expected an error for a missing file")
	}
}
