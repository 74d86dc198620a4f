// Package telegram is the bot transport: operator notifications,
// profile commands and the watched-chat listener.
package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vagabr/vaga-responder/internal/profile"
	"github.com/vagabr/vaga-responder/internal/responder"
)

// apiSender is the slice of the bot API the notifier needs.
type apiSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier delivers processing outcomes to the operator's DM in HTML.
type Notifier struct {
	api         apiSender
	owner       int64
	includeURLs bool
}

func NewNotifier(api apiSender, owner int64, includeURLs bool) *Notifier {
	return &Notifier{api: api, owner: owner, includeURLs: includeURLs}
}

// Notify formats and sends one event. Without a configured owner it
// is a no-op.
func (n *Notifier) Notify(_ context.Context, ev responder.Event) error {
	if n.owner == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(n.owner, n.format(ev))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	_, err := n.api.Send(msg)
	return err
}

func (n *Notifier) format(ev responder.Event) string {
	origin := ""
	if ev.Origin != "" {
		origin = "\n🧷 Mensagem: " + esc(ev.Origin)
	}

	links := ""
	if n.includeURLs && len(ev.URLs) > 0 {
		var b strings.Builder
		b.WriteString("\n\n🔗 Links:")
		for _, u := range ev.URLs {
			b.WriteString("\n• " + esc(u))
		}
		links = b.String()
	}

	switch ev.Kind {
	case responder.EventRejected:
		return fmt.Sprintf("🚫 Vaga rejeitada — motivo: %s%s", esc(ev.Verdict.Reason), origin)

	case responder.EventMatch:
		tag := "✅ Vaga compatível"
		if ev.Verdict.Tier == profile.TierRelated {
			tag = "⚠️ Vaga relacionada"
		}
		return fmt.Sprintf("%s com <b>%s</b>%s\n———\n%s%s",
			tag, esc(ev.Verdict.Profile), origin, esc(ev.Body), links)

	case responder.EventDuplicate:
		return fmt.Sprintf(
			"📧 Vaga de e-mail — <b>não enviado</b> (duplicado em %dd)\n"+
				"Para: %s\nÚltimo assunto: “%s” em %s%s%s\n<b>Anexo:</b> %s",
			ev.WindowDays, esc(ev.To), esc(ev.Duplicate.Subject), esc(ev.Duplicate.Date),
			origin, links, simNao(ev.Attachment))

	case responder.EventSent:
		return fmt.Sprintf(
			"📧 Vaga de e-mail — <b>enviado automaticamente</b>\n"+
				"Para: %s\nModelo: %s\nAssunto: %s\nAnexo: %s%s%s\n\n<b>Prévia:</b>\n%s",
			esc(ev.To), esc(ev.Email.Template.Label()), esc(ev.Email.Subject),
			simNao(ev.Attachment), origin, links, esc(ev.Email.Text))

	case responder.EventSendFailed:
		return fmt.Sprintf("📧 Vaga de e-mail — <b>falha no envio</b>\nPara: %s\nErro: %s%s%s",
			esc(ev.To), esc(ev.Err.Error()), origin, links)

	case responder.EventNoEmail:
		return fmt.Sprintf("🔗 Vaga de link (sem e-mail detectado)%s%s", origin, links)

	default:
		return fmt.Sprintf("evento desconhecido: %s", ev.Kind)
	}
}

// esc escapes the characters Telegram's HTML parse mode cares about.
func esc(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

func simNao(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}
