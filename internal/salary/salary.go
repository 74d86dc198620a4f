// Package salary implements the scored salary-extraction heuristic.
// It is a heuristic, not a parser: callers must tolerate false
// positives and negatives rather than treat them as errors.
package salary

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	contextWindow = 25

	currencyScore    = 3
	goodContextScore = 2
	badContextScore  = 3

	// Bare numbers below this, without a currency marker, "k" suffix
	// or thousands grouping, are treated as noise (stray counters).
	minBareValue = 1000
)

var thousandsRe = regexp.MustCompile(`\d{1,3}(?:[.\s]\d{3})+`)

// Extractor scans text for salary candidates. The zero value is not
// usable; construct with New. Cue lists and the currency marker are
// configuration so the heuristic can be tuned without code changes.
type Extractor struct {
	re          *regexp.Regexp
	goodContext []string
	badContext  []string
}

// Config overrides the built-in pt-BR defaults.
type Config struct {
	// CurrencyMarker is matched case-insensitively before the number,
	// e.g. "r$".
	CurrencyMarker string
	// GoodContext are substrings near a candidate that suggest a
	// salary figure.
	GoodContext []string
	// BadContext are substrings near a candidate that suggest an
	// hourly rate instead.
	BadContext []string
}

// New builds an Extractor, applying pt-BR defaults for any Config
// field left empty.
func New(cfg Config) *Extractor {
	marker := cfg.CurrencyMarker
	if marker == "" {
		marker = "r$"
	}

	good := cfg.GoodContext
	if len(good) == 0 {
		good = []string{"sal", "remuner", "pag", "compensa", "fixo", "mensal"}
	}

	bad := cfg.BadContext
	if len(bad) == 0 {
		bad = []string{"hora", "/h", "por hora"}
	}

	pattern := `(` + regexp.QuoteMeta(strings.ToLower(marker)) + `\s*)?` +
		`(\d{1,3}(?:[.\s]\d{3})+|\d+)(?:[,.](\d{2}))?\s*(k)?`

	return &Extractor{
		re:          regexp.MustCompile(pattern),
		goodContext: good,
		badContext:  bad,
	}
}

// Extract returns the best salary guess found in text, or ok=false
// when no candidate survives.
func (e *Extractor) Extract(text string) (int, bool) {
	value, _, ok := e.Score(text)
	return value, ok
}

// Score returns the best candidate's value together with its score,
// for callers that want to log the confidence. It operates on
// lower-cased raw text to preserve currency symbols and punctuation.
func (e *Extractor) Score(text string) (value, score int, ok bool) {
	t := strings.ToLower(text)

	bestValue, bestScore := 0, 0
	found := false

	for _, m := range e.re.FindAllStringSubmatchIndex(t, -1) {
		hasCurrency := m[2] >= 0
		digits := t[m[4]:m[5]]
		hasK := m[8] >= 0

		val, err := strconv.Atoi(strings.NewReplacer(".", "", " ", "").Replace(digits))
		if err != nil {
			continue
		}
		if hasK {
			val *= 1000
		}

		s := 0
		if hasCurrency {
			s += currencyScore
		}

		start := m[0] - contextWindow
		if start < 0 {
			start = 0
		}
		end := m[1] + contextWindow
		if end > len(t) {
			end = len(t)
		}
		ctx := t[start:end]

		if containsAny(ctx, e.goodContext) {
			s += goodContextScore
		}
		if containsAny(ctx, e.badContext) {
			s -= badContextScore
		}

		if !hasCurrency && !hasK && !thousandsRe.MatchString(digits) && val < minBareValue {
			continue
		}

		if !found || s > bestScore || (s == bestScore && val > bestValue) {
			bestValue, bestScore = val, s
			found = true
		}
	}

	return bestValue, bestScore, found
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
