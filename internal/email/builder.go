// Package email builds the application emails sent on a match.
package email

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// TemplateID selects one of the embedded application templates.
type TemplateID string

const (
	TemplatePadrao    TemplateID = "padrao"
	TemplateCurto     TemplateID = "curto"
	TemplateTransicao TemplateID = "transicao"
)

// Labels are the operator-facing names used in Telegram notices.
var labels = map[TemplateID]string{
	TemplatePadrao:    "Padrão",
	TemplateCurto:     "Curto",
	TemplateTransicao: "Transição",
}

// Label returns the operator-facing name of the template.
func (t TemplateID) Label() string {
	if l, ok := labels[t]; ok {
		return l
	}
	return string(t)
}

// ParseTemplateID maps a configuration string to a TemplateID,
// falling back to padrao.
func ParseTemplateID(s string) TemplateID {
	switch TemplateID(s) {
	case TemplatePadrao, TemplateCurto, TemplateTransicao:
		return TemplateID(s)
	default:
		return TemplatePadrao
	}
}

//go:embed templates/*.tmpl
var templateFS embed.FS

var bodies = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Links are the candidate's contact links rendered into every body.
type Links struct {
	LinkedIn string
	GitHub   string
	Phone    string
}

// Builder renders subject and body for an application email.
type Builder struct {
	// SubjectPrefix prepends every subject, e.g. "[Candidatura]".
	SubjectPrefix string
	// SubjectFallback is the role used when inference yields nothing.
	SubjectFallback string
	// Signature closes the body and the subject.
	Signature string
	// IncludeJobURL adds the job reference line when a URL is known.
	IncludeJobURL bool
	Links         Links
}

// Email is a fully built candidate message, ready for delivery and
// for the dedup lookup.
type Email struct {
	Subject  string
	Text     string
	HTML     string
	Template TemplateID
}

type bodyData struct {
	Role      string
	Source    string
	JobURL    string
	Links     Links
	Signature string
}

// Subject renders the subject line for a role.
func (b *Builder) Subject(role string) string {
	if role == "" {
		role = b.SubjectFallback
	}
	return fmt.Sprintf("%s %s — %s", b.SubjectPrefix, role, b.Signature)
}

// Build renders the selected template. source and jobURL are optional;
// the job URL is only included when the builder is configured for it.
func (b *Builder) Build(id TemplateID, role, source, jobURL string) (*Email, error) {
	data := bodyData{
		Role:      role,
		Source:    source,
		Links:     b.Links,
		Signature: b.Signature,
	}
	if b.IncludeJobURL {
		data.JobURL = jobURL
	}

	var buf strings.Builder
	if err := bodies.ExecuteTemplate(&buf, string(id)+".tmpl", data); err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", id, err)
	}

	text := strings.TrimSpace(buf.String())

	return &Email{
		Subject:  b.Subject(role),
		Text:     text,
		HTML:     toHTML(text),
		Template: id,
	}, nil
}

// toHTML wraps the plain-text body for the multipart alternative.
func toHTML(text string) string {
	escaped := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(text)
	return `<div style="font:14px/1.5 -apple-system,BlinkMacSystemFont,Segoe UI,Roboto,Helvetica,Arial,sans-serif">` +
		strings.ReplaceAll(escaped, "\n", "<br/>") + `</div>`
}
