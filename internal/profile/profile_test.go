package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProfile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".json"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing profile fixture: %v", err)
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "backend", `{
		"title": "Backend Node",
		"must": {"all": ["node"], "any": ["senior", "pleno"]},
		"related_any": ["typescript"],
		"ban": ["estágio"],
		"salary": {"min": 8000}
	}`)

	p, err := Load(dir, "backend")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Title != "Backend Node" {
		t.Fatalf("unexpected title: %q", p.Title)
	}
	if len(p.Must.Any) != 2 || p.Must.Any[0] != "senior" {
		t.Fatalf("unexpected must.any: %v", p.Must.Any)
	}
	if p.Salary.Min != 8000 {
		t.Fatalf("unexpected salary.min: %d", p.Salary.Min)
	}
	if p.Salary.Currency != "BRL" {
		t.Fatalf("expected BRL default, got %q", p.Salary.Currency)
	}
}

func TestLoadProfileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(dir, "missing"); err == nil {
		t.Fatalf("expected error for missing profile")
	}

	writeProfile(t, dir, "broken", `{not json`)
	_, err := Load(dir, "broken")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Fatalf("error should name the profile: %v", err)
	}

	writeProfile(t, dir, "untitled", `{"must": {}}`)
	if _, err := Load(dir, "untitled"); err == nil {
		t.Fatalf("expected validation error for missing title")
	}
}

func TestManagerSwitch(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "default", `{"title": "Default"}`)
	writeProfile(t, dir, "other", `{"title": "Other"}`)

	m := NewManager(dir, "default")

	p, err := m.Current()
	if err != nil || p.Title != "Default" {
		t.Fatalf("Current: %v, %+v", err, p)
	}

	if _, err := m.SetActive("nope"); err == nil {
		t.Fatalf("expected switch to unknown profile to fail")
	}
	if m.Active() != "default" {
		t.Fatalf("failed switch must not change the active profile")
	}

	if _, err := m.SetActive("other"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if m.Active() != "other" {
		t.Fatalf("expected active profile to be other, got %q", m.Active())
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "a", `{"title": "A"}`)
	writeProfile(t, dir, "b", `{"title": "B"}`)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 profiles, got %v", names)
	}
}
