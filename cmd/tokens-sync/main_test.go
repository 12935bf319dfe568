package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeExports(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	tokensDir := filepath.Join(dir, "design-system", "tokens")
	if err := os.MkdirAll(tokensDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(tokensDir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestRunWritesStylesheet(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeExports(t, dir, map[string]string{
		"base.tokens.json":       `{"tokens": {"color/green/500": "#2F5233", "scale/16": "16"}}`,
		"aliases.tokens.json":    `{"tokens": {"color/text/brand/default": {"$ref": "color/green/500"}}}`,
		"typography.tokens.json": `{"tokens": {"body/size": {"$ref": "scale/16"}}}`,
	})

	var stdout, stderr bytes.Buffer
	if code := run(&stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "Wrote design-system/generated/tokens.css\n" {
		t.Fatalf("stdout = %q", got)
	}

	css, err := os.ReadFile(filepath.Join(dir, "design-system", "generated", "tokens.css"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(css), "  --base-scale-16: 16px;") {
		t.Fatalf("unexpected css:\n%s", css)
	}
}

func TestRunFailsOnMissingInputs(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	var stdout, stderr bytes.Buffer
	if code := run(&stdout, &stderr); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout should be empty, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Missing token files. Expected:") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}
