package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trueinfluence/writeit/internal/logger"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"lowercase yes", "yes\n", true},
		{"mixed case Yes", "Yes\n", true},
		{"lowercase n", "n\n", false},
		{"empty input", "\n", false},
		{"random text", "maybe\n", false},
		{"y with spaces", "  y  \n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := confirm(io.Discard, strings.NewReader(tt.input), "Test?")
			if result != tt.expected {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfirm_EOF(t *testing.T) {
	if confirm(io.Discard, strings.NewReader(""), "Test?") {
		t.Error("confirm(EOF) = true, want false")
	}
}

func TestConfirm_ErrorReader(t *testing.T) {
	if confirm(io.Discard, &errorReader{}, "Test?") {
		t.Error("confirm(error) = true, want false")
	}
}

// errorReader is a reader that always returns an error
type errorReader struct{}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}

func withLogPaths(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "writeit-debug.log")
	if err := os.WriteFile(path, []byte("log"), 0o644); err != nil {
		t.Fatal(err)
	}
	orig := logger.LogPaths
	logger.LogPaths = []string{path, filepath.Join(dir, "writeit-server.log")}
	t.Cleanup(func() { logger.LogPaths = orig })
	return path
}

func TestRunClean_Aborted(t *testing.T) {
	path := withLogPaths(t)
	buf := new(bytes.Buffer)

	if err := runCleanWithReader(buf, strings.NewReader("n\n")); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("log should survive an aborted clean")
	}
	if !strings.Contains(buf.String(), "Aborted.") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestRunClean_Confirmed(t *testing.T) {
	path := withLogPaths(t)
	buf := new(bytes.Buffer)

	if err := runCleanWithReader(buf, strings.NewReader("y\n")); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("log should be removed")
	}
	if !strings.Contains(buf.String(), "Removed 1 log file(s).") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	runCleanWithReader(buf, strings.NewReader(""))
	if !strings.Contains(buf.String(), "Nothing to clean.") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
