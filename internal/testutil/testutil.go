// Package testutil provides common test helpers for the mise project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempConfigFile creates a temporary settings config.toml with the given
// content and returns its path.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempConfigFile: write failed: %v", err)
	}
	return path
}

// WriteProjectFile writes a mise.toml into dir, creating dir if needed,
// and returns the file path.
func WriteProjectFile(t *testing.T, dir, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("WriteProjectFile: mkdir failed: %v", err)
	}
	path := filepath.Join(dir, "mise.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteProjectFile: write failed: %v", err)
	}
	return path
}

// Environ converts a map into KEY=VALUE form.
func Environ(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}
