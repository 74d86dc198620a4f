package profile

import (
	"strings"
	"testing"

	"github.com/vagabr/vaga-responder/internal/salary"
)

func newTestScorer() *Scorer {
	return NewScorer(salary.New(salary.Config{}))
}

func TestClassifyBanShortCircuits(t *testing.T) {
	p := &Profile{
		Title: "Backend",
		Must:  Must{All: []string{"node"}, Any: []string{"senior"}},
		Ban:   []string{"estágio"},
	}

	v := newTestScorer().Classify("Vaga estágio node senior", p)
	if v.Matched {
		t.Fatalf("expected rejection, got %+v", v)
	}
	if v.Reason != "banned: estágio" {
		t.Fatalf("unexpected reason: %q", v.Reason)
	}
}

func TestClassifyMissingMustAll(t *testing.T) {
	p := &Profile{
		Title: "Backend",
		Must:  Must{All: []string{"node", "docker"}},
	}

	v := newTestScorer().Classify("Vaga node pleno", p)
	if v.Matched {
		t.Fatalf("expected rejection, got %+v", v)
	}
	if v.Reason != "missing required (all): docker" {
		t.Fatalf("expected the first missing term reported, got %q", v.Reason)
	}
}

func TestClassifyNoRequiredTerm(t *testing.T) {
	p := &Profile{
		Title: "Backend",
		Must:  Must{All: []string{"node"}, Any: []string{"senior"}},
	}

	v := newTestScorer().Classify("Vaga node pleno", p)
	if v.Matched {
		t.Fatalf("expected rejection, got %+v", v)
	}
	if v.Reason != "no required term found" {
		t.Fatalf("unexpected reason: %q", v.Reason)
	}
}

func TestClassifyTierFallback(t *testing.T) {
	p := &Profile{
		Title:      "Backend",
		Must:       Must{Any: []string{"rust"}},
		RelatedAny: []string{"go"},
	}
	s := newTestScorer()

	v := s.Classify("vaga para dev go remoto", p)
	if !v.Matched || v.Tier != TierRelated {
		t.Fatalf("expected related match, got %+v", v)
	}

	v = s.Classify("vaga para dev python remoto", p)
	if v.Matched {
		t.Fatalf("expected rejection when neither set matches, got %+v", v)
	}
}

func TestClassifyPrimaryWhenMustAnyEmpty(t *testing.T) {
	p := &Profile{Title: "Backend", Must: Must{All: []string{"node"}}}

	v := newTestScorer().Classify("vaga node remota", p)
	if !v.Matched || v.Tier != TierPrimary {
		t.Fatalf("expected primary match, got %+v", v)
	}
	if v.Profile != "Backend" {
		t.Fatalf("expected verdict to carry the profile title, got %q", v.Profile)
	}
}

func TestClassifySalaryGate(t *testing.T) {
	p := &Profile{
		Title:  "Backend",
		Must:   Must{Any: []string{"node"}},
		Salary: Salary{Min: 8000},
	}
	s := newTestScorer()

	v := s.Classify("vaga node, pagamos R$ 50/hora", p)
	if v.Matched {
		t.Fatalf("expected salary gate rejection, got %+v", v)
	}
	if !strings.HasPrefix(v.Reason, "salary below minimum") {
		t.Fatalf("unexpected reason: %q", v.Reason)
	}

	// No extracted salary passes the gate.
	v = s.Classify("vaga node remota", p)
	if !v.Matched {
		t.Fatalf("expected match when no salary is present, got %+v", v)
	}

	// The gate applies to the related tier too.
	related := &Profile{
		Title:      "Backend",
		Must:       Must{Any: []string{"rust"}},
		RelatedAny: []string{"go"},
		Salary:     Salary{Min: 8000},
	}
	v = s.Classify("vaga go, pagamos R$ 50/hora", related)
	if v.Matched {
		t.Fatalf("expected salary gate rejection on related tier, got %+v", v)
	}
}

func TestClassifyBanBeatsEverything(t *testing.T) {
	p := &Profile{
		Title: "Backend",
		Must:  Must{All: []string{"node"}, Any: []string{"senior"}},
		Ban:   []string{"php"},
	}

	// All required terms present alongside a banned one.
	v := newTestScorer().Classify("vaga node senior com php legado", p)
	if v.Matched || v.Reason != "banned: php" {
		t.Fatalf("expected ban to win, got %+v", v)
	}
}
