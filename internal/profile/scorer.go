package profile

import (
	"fmt"

	"github.com/vagabr/vaga-responder/internal/match"
	"github.com/vagabr/vaga-responder/internal/salary"
)

// Tier is the confidence level of a match.
type Tier string

const (
	TierPrimary Tier = "primary"
	TierRelated Tier = "related"
)

// Verdict is the classification result for one message. Produced
// fresh per message, never persisted. Profile carries the title of the
// profile the verdict was produced against, so callers do not need to
// read shared state to know what matched.
type Verdict struct {
	Matched bool
	Tier    Tier
	Reason  string
	Profile string
}

// Scorer applies a profile's rules to message text. The checks run in
// a fixed order and the first decisive one wins: ban is an absolute
// disqualifier checked first, the related fallback keeps borderline
// postings visible at reduced confidence, and the salary gate applies
// uniformly to both tiers so a high-confidence but underpaid posting
// is still rejected.
type Scorer struct {
	salaries *salary.Extractor
}

func NewScorer(salaries *salary.Extractor) *Scorer {
	return &Scorer{salaries: salaries}
}

// Classify scores text against p. Total over any input: malformed or
// empty text yields a rejection, never an error.
func (s *Scorer) Classify(text string, p *Profile) Verdict {
	for _, banned := range p.Ban {
		if match.HasTerm(text, banned) {
			return rejected(p, fmt.Sprintf("banned: %s", banned))
		}
	}

	for _, required := range p.Must.All {
		if !match.HasTerm(text, required) {
			return rejected(p, fmt.Sprintf("missing required (all): %s", required))
		}
	}

	tier := TierPrimary
	if len(p.Must.Any) > 0 && !match.HitAny(text, p.Must.Any) {
		if len(p.RelatedAny) == 0 || !match.HitAny(text, p.RelatedAny) {
			return rejected(p, "no required term found")
		}
		tier = TierRelated
	}

	if p.Salary.Min > 0 {
		if extracted, ok := s.salaries.Extract(text); ok && extracted < p.Salary.Min {
			return rejected(p, fmt.Sprintf("salary below minimum: %d < %d", extracted, p.Salary.Min))
		}
	}

	reason := "ok"
	if tier == TierRelated {
		reason = "related"
	}

	return Verdict{Matched: true, Tier: tier, Reason: reason, Profile: p.Title}
}

func rejected(p *Profile, reason string) Verdict {
	return Verdict{Matched: false, Reason: reason, Profile: p.Title}
}
