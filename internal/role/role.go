// Package role infers a human-readable role label for the email
// subject from the technologies mentioned in a posting.
package role

import (
	"regexp"

	"github.com/vagabr/vaga-responder/internal/match"
)

// rule maps technology patterns to a role label. All patterns must
// match when set; otherwise any pattern suffices.
type rule struct {
	role string
	all  []*regexp.Regexp
	any  []*regexp.Regexp
}

func rx(pattern string) *regexp.Regexp { return regexp.MustCompile(pattern) }

// rules are evaluated in order and the first matching rule wins. The
// ordering is load-bearing: combined-stack rules must come before the
// single-stack rules they overlap with, so "node + react" resolves to
// full-stack rather than backend.
var rules = []rule{
	{role: "Full-stack (Node + React)", all: []*regexp.Regexp{
		rx(`node\b|nodejs\b|node\s+js\b|typescript\b|ts\b|javascript\b`),
		rx(`\breact\b`),
	}},
	{role: "Full-stack (PHP + Vue/React)", all: []*regexp.Regexp{
		rx(`\bphp\b|\blaravel\b|\bsymfony\b`),
		rx(`\bvue\b|\breact\b`),
	}},
	{role: "Backend (Node/TS)", any: []*regexp.Regexp{rx(`node\b|nodejs\b|node\s+js\b|typescript\b|ts\b`)}},
	{role: "Backend (PHP/Laravel)", any: []*regexp.Regexp{rx(`\bphp\b|\blaravel\b|\bsymfony\b`)}},
	{role: "Backend (Java/Spring)", any: []*regexp.Regexp{rx(`\bjava\b|\bspring\b|\bkotlin\b`)}},
	{role: "Backend (Python/Django)", any: []*regexp.Regexp{rx(`\bpython\b|\bdjango\b|\bflask\b`)}},
	{role: "Backend (Go)", any: []*regexp.Regexp{rx(`\bgo\b|\bgolang\b`)}},
	{role: "Backend (.NET/C#)", any: []*regexp.Regexp{rx(`\bc#\b|\bdotnet\b|\basp\s*net\b`)}},
	{role: "Frontend (React)", any: []*regexp.Regexp{rx(`\breact\b`)}},
	{role: "Frontend (Vue)", any: []*regexp.Regexp{rx(`\bvue\b`)}},
	{role: "Frontend (Angular)", any: []*regexp.Regexp{rx(`\bangular\b`)}},
	{role: "DevOps/Cloud", any: []*regexp.Regexp{rx(`\baws\b|\bazure\b|\bgcp\b|\bkubernetes\b|\bdocker\b`)}},
	{role: "Mobile (iOS/Android)", any: []*regexp.Regexp{rx(`\bios\b|\bandroid\b|\bflutter\b|\breact\s+native\b`)}},
}

func (r rule) matches(t string) bool {
	if len(r.all) > 0 {
		for _, re := range r.all {
			if !re.MatchString(t) {
				return false
			}
		}
		return true
	}
	for _, re := range r.any {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// Infer returns the role label for raw posting text, falling back to
// profileTitle and then to the configured subject fallback.
func Infer(raw, profileTitle, fallback string) string {
	t := match.ToWordSpace(raw)

	for _, r := range rules {
		if r.matches(t) {
			return r.role
		}
	}

	if profileTitle != "" {
		return profileTitle
	}
	return fallback
}
