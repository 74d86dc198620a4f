package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("  123:abc \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Load(Source{Name: "bot token", File: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "123:abc" {
		t.Fatalf("expected trimmed token, got %q", got)
	}
}

func TestLoadFilePrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pass")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Load(Source{Name: "smtp password", Value: "inline", File: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("file must take precedence, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "bot token"}); err == nil || !strings.Contains(err.Error(), "bot token") {
		t.Fatalf("expected named not-configured error, got %v", err)
	}

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(Source{Name: "smtp password", File: empty}); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty-file error, got %v", err)
	}

	if _, err := Load(Source{Name: "x", File: filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("expected missing-file error")
	}
}
