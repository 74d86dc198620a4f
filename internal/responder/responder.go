// Package responder wires the classification core to the boundary
// collaborators: it takes an inbound message, decides whether it
// matches the active profile, and either notifies the operator or
// sends an application email, deduplicating against the sent log.
package responder

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vagabr/vaga-responder/internal/dedup"
	"github.com/vagabr/vaga-responder/internal/email"
	"github.com/vagabr/vaga-responder/internal/logger"
	"github.com/vagabr/vaga-responder/internal/match"
	"github.com/vagabr/vaga-responder/internal/profile"
	"github.com/vagabr/vaga-responder/internal/role"
)

// bodyPreviewLimit caps how much message text goes into operator
// notifications.
const bodyPreviewLimit = 900

// Inbound is one message handed over by a transport (bot listener or
// the ingest endpoint).
type Inbound struct {
	Text   string
	Source string
	Origin string
	URLs   []string
}

// EventKind tags an operator notification.
type EventKind string

const (
	EventRejected   EventKind = "rejected"
	EventMatch      EventKind = "match"
	EventDuplicate  EventKind = "duplicate"
	EventSent       EventKind = "sent"
	EventSendFailed EventKind = "send_failed"
	EventNoEmail    EventKind = "no_email"
)

// Event carries everything a notifier needs to format an operator
// message for one processing outcome.
type Event struct {
	Kind       EventKind
	Verdict    profile.Verdict
	Body       string
	To         string
	Email      *email.Email
	Duplicate  *dedup.Record
	WindowDays int
	Err        error
	Origin     string
	URLs       []string
	Attachment bool
}

// Notifier delivers processing outcomes to the operator.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Sender delivers a built email.
type Sender interface {
	Send(to string, e *email.Email) error
	HasAttachment() bool
}

// Enricher appends link-preview context to the message text.
type Enricher interface {
	FromURLs(ctx context.Context, urls []string) string
}

// ProfileSource supplies the active profile at call time.
type ProfileSource interface {
	Current() (*profile.Profile, error)
}

// SentLog is the dedup store surface the responder needs.
type SentLog interface {
	FindDuplicate(to, subject, body string, mode dedup.Mode) *dedup.Record
	Add(to, subject, body, template string) error
}

// Options are the processing switches, all externally supplied
// configuration.
type Options struct {
	AutoSend       bool
	Template       email.TemplateID
	DedupMode      dedup.Mode
	WindowDays     int
	AppendSource   bool
	RelatedTag     bool
	NotifyRejected bool
}

// Deps aggregates the responder's collaborators.
type Deps struct {
	Profiles ProfileSource
	Scorer   *profile.Scorer
	Builder  *email.Builder
	Store    SentLog
	Sender   Sender
	Notifier Notifier
	Enricher Enricher
	Logger   *zap.Logger
}

// Responder processes inbound messages one at a time. Processing is
// serialized with a mutex so the sent log keeps its single-writer
// invariant even with the bot listener and the ingest server running
// concurrently.
type Responder struct {
	deps Deps
	opts Options

	mu sync.Mutex
}

func New(deps Deps, opts Options) *Responder {
	return &Responder{deps: deps, opts: opts}
}

// Process classifies one inbound message and carries the outcome
// through notification, deduplication and delivery.
func (r *Responder) Process(ctx context.Context, in Inbound) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.deps.Profiles.Current()
	if err != nil {
		return fmt.Errorf("loading active profile: %w", err)
	}

	urls := in.URLs
	if len(urls) == 0 {
		urls = match.ExtractURLs(in.Text)
	}

	full := in.Text
	if r.deps.Enricher != nil {
		if og := r.deps.Enricher.FromURLs(ctx, urls); og != "" {
			full = in.Text + "\n\n" + og
		}
	}

	verdict := r.deps.Scorer.Classify(full, p)
	if !verdict.Matched {
		r.deps.Logger.Info("message rejected",
			zap.String("profile", verdict.Profile),
			zap.String("reason", verdict.Reason),
			zap.String("source", in.Source),
			zap.String("text", logger.TruncateForLog(full, 160)),
		)
		if r.opts.NotifyRejected {
			return r.notify(ctx, Event{Kind: EventRejected, Verdict: verdict, Origin: in.Origin})
		}
		return nil
	}

	r.deps.Logger.Info("message matched",
		zap.String("profile", verdict.Profile),
		zap.String("tier", string(verdict.Tier)),
		zap.String("source", in.Source),
		zap.String("text", logger.TruncateForLog(full, 160)),
	)

	if err := r.notify(ctx, Event{
		Kind:    EventMatch,
		Verdict: verdict,
		Body:    previewBody(full),
		Origin:  in.Origin,
		URLs:    urls,
	}); err != nil {
		return err
	}

	emails := match.ExtractEmails(full)
	if len(emails) == 0 || !r.opts.AutoSend {
		return r.notify(ctx, Event{Kind: EventNoEmail, Verdict: verdict, Origin: in.Origin, URLs: urls})
	}
	to := emails[0]

	inferred := role.Infer(full, p.Title, r.deps.Builder.SubjectFallback)
	if r.opts.RelatedTag && verdict.Tier == profile.TierRelated {
		inferred += " (relacionada)"
	}

	source := ""
	if r.opts.AppendSource {
		source = in.Source
	}
	jobURL := ""
	if len(urls) > 0 {
		jobURL = urls[0]
	}

	built, err := r.deps.Builder.Build(r.opts.Template, inferred, source, jobURL)
	if err != nil {
		return fmt.Errorf("building email: %w", err)
	}

	if dup := r.deps.Store.FindDuplicate(to, built.Subject, built.Text, r.opts.DedupMode); dup != nil {
		r.deps.Logger.Info("duplicate email suppressed",
			zap.String("to", to),
			zap.String("previous_subject", dup.Subject),
			zap.String("previous_date", dup.Date),
		)
		return r.notify(ctx, Event{
			Kind:       EventDuplicate,
			Verdict:    verdict,
			To:         to,
			Email:      built,
			Duplicate:  dup,
			WindowDays: r.opts.WindowDays,
			Origin:     in.Origin,
			URLs:       urls,
			Attachment: r.deps.Sender.HasAttachment(),
		})
	}

	if err := r.deps.Sender.Send(to, built); err != nil {
		r.deps.Logger.Error("sending application email failed",
			zap.String("to", to),
			zap.Error(err),
		)
		return r.notify(ctx, Event{
			Kind:    EventSendFailed,
			Verdict: verdict,
			To:      to,
			Email:   built,
			Err:     err,
			Origin:  in.Origin,
			URLs:    urls,
		})
	}

	// Recorded only after a successful send; a crash in between means
	// a possible re-send, never a silently lost application.
	if err := r.deps.Store.Add(to, built.Subject, built.Text, string(built.Template)); err != nil {
		r.deps.Logger.Error("recording sent email failed", zap.Error(err))
	}

	r.deps.Logger.Info("application email sent",
		zap.String("to", to),
		zap.String("template", string(built.Template)),
		zap.String("subject", built.Subject),
	)

	return r.notify(ctx, Event{
		Kind:       EventSent,
		Verdict:    verdict,
		To:         to,
		Email:      built,
		Origin:     in.Origin,
		URLs:       urls,
		Attachment: r.deps.Sender.HasAttachment(),
	})
}

func (r *Responder) notify(ctx context.Context, ev Event) error {
	if r.deps.Notifier == nil {
		return nil
	}
	if err := r.deps.Notifier.Notify(ctx, ev); err != nil {
		r.deps.Logger.Warn("notifying operator failed",
			zap.String("event", string(ev.Kind)),
			zap.Error(err),
		)
	}
	return nil
}

func previewBody(s string) string {
	runes := []rune(s)
	if len(runes) <= bodyPreviewLimit {
		return s
	}
	return string(runes[:bodyPreviewLimit]) + "..."
}
