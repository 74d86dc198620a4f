// Package dedup keeps the content-addressed log of sent application
// emails and answers whether an equivalent email already went to a
// recipient within the rolling window.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/vagabr/vaga-responder/internal/match"
)

// Mode selects how a previous send is considered equivalent.
type Mode string

const (
	// ModeOff never reports duplicates.
	ModeOff Mode = "off"
	// ModeSubjectBody requires both content hashes to match exactly.
	ModeSubjectBody Mode = "subject_body"
	// ModeSubject compares normalized subjects.
	ModeSubject Mode = "subject"
	// ModeTo treats any send to the recipient within the window as a
	// duplicate, regardless of content.
	ModeTo Mode = "to"
)

// ParseMode maps a configuration string to a Mode, falling back to
// ModeTo for anything unrecognized.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeOff, ModeSubjectBody, ModeSubject, ModeTo:
		return Mode(s)
	default:
		return ModeTo
	}
}

// Record is one persisted sent email. Records are appended, never
// mutated or deleted; window expiry is a read-time filter, not a
// physical prune.
type Record struct {
	To          string `json:"to"`
	SubjectSha  string `json:"subjectSha"`
	BodySha     string `json:"bodySha"`
	Subject     string `json:"subject"`
	Template    string `json:"template"`
	SubjectNorm string `json:"subjectNorm,omitempty"`
	Date        string `json:"date"`
}

// historyLimit caps how many recent records per recipient are
// considered during a lookup.
const historyLimit = 10

// Store is the append-only sent log, loaded at startup and flushed
// synchronously after every append. It assumes a single logical
// writer; concurrent ingestion paths must serialize calls into Add.
type Store struct {
	path       string
	windowDays int
	records    []Record
	now        func() time.Time
}

// Open loads (or creates) the sent log at path. A corrupt log is
// reported through the logger and treated as empty, matching the
// behavior an operator gets by deleting the file.
func Open(path string, windowDays int, logger *zap.Logger) (*Store, error) {
	s := &Store{path: path, windowDays: windowDays, now: time.Now}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.flush(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sent log: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.records); err != nil {
			if logger != nil {
				logger.Warn("sent log is corrupt, starting empty",
					zap.String("path", path),
					zap.Error(err),
				)
			}
			s.records = nil
		}
	}

	return s, nil
}

func sha(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func (s *Store) withinWindow(dateISO string) bool {
	t, err := time.Parse(time.RFC3339, dateISO)
	if err != nil {
		return false
	}
	return s.now().Sub(t) <= time.Duration(s.windowDays)*24*time.Hour
}

// History returns the recipient's records within the window, most
// recent first, capped at the 10 latest.
func (s *Store) History(to string) []Record {
	var hist []Record
	for _, r := range s.records {
		if r.To == to && s.withinWindow(r.Date) {
			hist = append(hist, r)
		}
	}

	sort.Slice(hist, func(i, j int) bool { return hist[i].Date > hist[j].Date })
	if len(hist) > historyLimit {
		hist = hist[:historyLimit]
	}
	return hist
}

// FindDuplicate reports the previous send the candidate email
// duplicates under the given mode, or nil.
func (s *Store) FindDuplicate(to, subject, body string, mode Mode) *Record {
	if mode == ModeOff {
		return nil
	}

	candidates := s.History(to)

	switch mode {
	case ModeSubjectBody:
		subjectSha, bodySha := sha(subject), sha(body)
		for i := range candidates {
			if candidates[i].SubjectSha == subjectSha && candidates[i].BodySha == bodySha {
				return &candidates[i]
			}
		}
	case ModeSubject:
		norm := match.NormalizeSubject(subject)
		for i := range candidates {
			stored := candidates[i].SubjectNorm
			if stored == "" {
				// Records written before subjectNorm existed.
				stored = match.NormalizeSubject(candidates[i].Subject)
			}
			if stored == norm {
				return &candidates[i]
			}
		}
	default: // ModeTo
		if len(candidates) > 0 {
			return &candidates[0]
		}
	}

	return nil
}

// Add appends a sent record and flushes the log synchronously.
func (s *Store) Add(to, subject, body, template string) error {
	s.records = append(s.records, Record{
		To:          to,
		SubjectSha:  sha(subject),
		BodySha:     sha(body),
		Subject:     subject,
		Template:    template,
		SubjectNorm: match.NormalizeSubject(subject),
		Date:        s.now().UTC().Format(time.RFC3339),
	})
	return s.flush()
}

// Len returns the number of records in the log, expired ones
// included.
func (s *Store) Len() int { return len(s.records) }

func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sent log: %w", err)
	}
	if s.records == nil {
		data = []byte("[]")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing sent log: %w", err)
	}
	return nil
}
