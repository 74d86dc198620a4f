// Package mailer delivers built application emails over SMTP.
package mailer

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/vagabr/vaga-responder/internal/email"
)

// Config is the SMTP endpoint plus sending identity.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// AttachmentPath points to the CV file. When it is unset or the
	// file is missing the email goes out without the attachment.
	AttachmentPath string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends emails through one SMTP account.
type Mailer struct {
	cfg    Config
	dialer dialer
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		logger: logger,
	}
}

// AttachmentPath returns the configured CV path when the file is
// accessible, or empty with a logged warning.
func (m *Mailer) AttachmentPath() string {
	if m.cfg.AttachmentPath == "" {
		m.logger.Warn("cv path is not configured, emails go out without attachment")
		return ""
	}
	if _, err := os.Stat(m.cfg.AttachmentPath); err != nil {
		m.logger.Warn("cv file is not accessible, emails go out without attachment",
			zap.String("path", m.cfg.AttachmentPath),
			zap.Error(err),
		)
		return ""
	}
	return m.cfg.AttachmentPath
}

// HasAttachment reports whether a CV would be attached right now.
func (m *Mailer) HasAttachment() bool { return m.AttachmentPath() != "" }

// Send delivers the built email to the recipient. The caller records
// the send in the dedup store only after Send returns nil.
func (m *Mailer) Send(to string, e *email.Email) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", e.Subject)
	msg.SetBody("text/plain", e.Text)
	msg.AddAlternative("text/html", e.HTML)

	if cv := m.AttachmentPath(); cv != "" {
		msg.Attach(cv)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email to %s: %w", to, err)
	}
	return nil
}
