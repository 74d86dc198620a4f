package match

import "testing"

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Vaga Sênior — Node.js é ótimo!",
		"  MÚLTIPLOS   espaços\t\n",
		"plain ascii text",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeStripsDiacritics(t *testing.T) {
	got := ToWordSpace("Salário Sênior")
	if got != "sala rio se nior" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestHasTermWordBoundary(t *testing.T) {
	cases := []struct {
		haystack string
		term     string
		want     bool
	}{
		{"javascript", "java", false},
		{"java developer", "java", true},
		{"Java Developer wanted", "java", true},
		{"we use node.js here", "node", true},
		{"nodemon only", "node", false},
		{"react native team", "react native", true},
		{"react   native team", "react native", true},
		{"reactive natives", "react native", false},
		{"anything", "", false},
		{"", "go", false},
	}

	for _, c := range cases {
		if got := HasTerm(c.haystack, c.term); got != c.want {
			t.Fatalf("HasTerm(%q, %q) = %v, want %v", c.haystack, c.term, got, c.want)
		}
	}
}

func TestHitAnyAndHitAll(t *testing.T) {
	text := "Vaga backend node senior"

	if !HitAny(text, []string{"python", "node"}) {
		t.Fatalf("expected HitAny to find node")
	}
	if HitAny(text, []string{"python", "ruby"}) {
		t.Fatalf("expected HitAny to find nothing")
	}
	if !HitAll(text, []string{"node", "senior"}) {
		t.Fatalf("expected HitAll to match both terms")
	}
	if HitAll(text, []string{"node", "react"}) {
		t.Fatalf("expected HitAll to fail on react")
	}
	if !HitAll(text, nil) {
		t.Fatalf("expected HitAll to be vacuously true for an empty set")
	}
}

func TestNormalizeSubjectCollapsesPunctuation(t *testing.T) {
	a := NormalizeSubject("[Candidatura] Backend (Go) — Pleno!")
	b := NormalizeSubject("candidatura backend go pleno")
	if a != b {
		t.Fatalf("subjects did not collapse to the same form: %q vs %q", a, b)
	}
}
