package role

import "testing"

func TestInferOrderingFirstMatchWins(t *testing.T) {
	// node + react must resolve to full-stack before the backend rule
	// gets a chance.
	got := Infer("Vaga node e react, senior", "", "Dev")
	if got != "Full-stack (Node + React)" {
		t.Fatalf("expected full-stack, got %q", got)
	}

	got = Infer("Vaga node senior", "", "Dev")
	if got != "Backend (Node/TS)" {
		t.Fatalf("expected backend node, got %q", got)
	}
}

func TestInferSingleStacks(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"procuramos dev golang remoto", "Backend (Go)"},
		{"vaga python django", "Backend (Python/Django)"},
		{"frontend react pleno", "Frontend (React)"},
		{"sre com kubernetes e aws", "DevOps/Cloud"},
		{"app flutter e android", "Mobile (iOS/Android)"},
	}

	for _, c := range cases {
		if got := Infer(c.text, "", "Dev"); got != c.want {
			t.Fatalf("Infer(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestInferFallbacks(t *testing.T) {
	if got := Infer("vaga misteriosa", "Backend Node", "Dev"); got != "Backend Node" {
		t.Fatalf("expected profile title fallback, got %q", got)
	}
	if got := Infer("vaga misteriosa", "", "Desenvolvedor(a) Backend"); got != "Desenvolvedor(a) Backend" {
		t.Fatalf("expected subject fallback, got %q", got)
	}
}

func TestInferNormalizesBeforeMatching(t *testing.T) {
	// Punctuation is folded to spaces before the patterns run.
	if got := Infer("Stack: Node.js/React!", "", "Dev"); got != "Full-stack (Node + React)" {
		t.Fatalf("expected full-stack, got %q", got)
	}
}
