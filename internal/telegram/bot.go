package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/vagabr/vaga-responder/internal/profile"
	"github.com/vagabr/vaga-responder/internal/responder"
	"github.com/vagabr/vaga-responder/internal/router"
)

// Processor is the responder surface the listener drives.
type Processor interface {
	Process(ctx context.Context, in responder.Inbound) error
}

// ProfileAdmin is the slice of the profile manager exposed through
// bot commands.
type ProfileAdmin interface {
	Active() string
	SetActive(name string) (*profile.Profile, error)
	List() ([]string, error)
}

// Bot listens for updates on watched chats and hands admitted
// messages to the responder.
type Bot struct {
	api       *tgbotapi.BotAPI
	owner     int64
	watch     []router.Token
	exclude   []router.Token
	profiles  ProfileAdmin
	processor Processor
	logger    *zap.Logger
}

// BotConfig holds the listener settings. Watch and Exclude are the
// comma-separated chat lists from the operator configuration.
type BotConfig struct {
	Token   string
	OwnerID int64
	Watch   string
	Exclude string
}

func NewBot(cfg BotConfig, profiles ProfileAdmin, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("creating bot api: %w", err)
	}

	return &Bot{
		api:      api,
		owner:    cfg.OwnerID,
		watch:    router.ParseList(cfg.Watch),
		exclude:  router.ParseList(cfg.Exclude),
		profiles: profiles,
		logger:   logger,
	}, nil
}

// SetProcessor attaches the responder. The bot is created first so
// its notifier can be handed to the responder's dependencies.
func (b *Bot) SetProcessor(proc Processor) {
	b.processor = proc
}

// Notifier returns the operator notifier bound to this bot's API.
func (b *Bot) Notifier(includeURLs bool) *Notifier {
	return NewNotifier(b.api, b.owner, includeURLs)
}

// Run consumes updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started", zap.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message", "edited_message", "channel_post", "edited_channel_post"}

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handle(ctx, update)
		}
	}
}

func (b *Bot) handle(ctx context.Context, update tgbotapi.Update) {
	msg := pickMessage(update)
	if msg == nil {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	text := messageText(msg)
	if strings.TrimSpace(text) == "" {
		return
	}

	if b.processor == nil {
		return
	}

	chat := chatIdentity(msg.Chat)
	if !router.Allowed(chat, b.watch, b.exclude) {
		b.logger.Debug("chat not admitted", zap.String("chat", chat.Label()))
		return
	}

	in := responder.Inbound{
		Text:   text,
		Source: chat.Label(),
		Origin: originLink(msg),
	}
	if err := b.processor.Process(ctx, in); err != nil {
		b.logger.Error("processing failed",
			zap.String("chat", chat.Label()),
			zap.Error(err),
		)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID, fmt.Sprintf("Seu chat id: <code>%d</code>", msg.Chat.ID))

	case "setprofile":
		name := strings.TrimSpace(msg.CommandArguments())
		if name == "" {
			names, err := b.profiles.List()
			if err != nil {
				b.reply(msg.Chat.ID, "Erro ao listar perfis: "+esc(err.Error()))
				return
			}
			b.reply(msg.Chat.ID, "Uso: /setprofile &lt;nome&gt;\nPerfis: "+esc(strings.Join(names, ", ")))
			return
		}
		p, err := b.profiles.SetActive(name)
		if err != nil {
			b.reply(msg.Chat.ID, "Erro ao ativar perfil: "+esc(err.Error()))
			return
		}
		b.reply(msg.Chat.ID, fmt.Sprintf("Perfil ativo: <b>%s</b> (%s)", esc(name), esc(p.Title)))

	case "showprofile":
		b.reply(msg.Chat.ID, "Perfil ativo: <b>"+esc(b.profiles.Active())+"</b>")
	}
}

func (b *Bot) reply(chatID int64, text string) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(m); err != nil {
		b.logger.Warn("reply failed", zap.Error(err))
	}
}

// pickMessage flattens the update variants the bot listens for.
func pickMessage(u tgbotapi.Update) *tgbotapi.Message {
	switch {
	case u.Message != nil:
		return u.Message
	case u.EditedMessage != nil:
		return u.EditedMessage
	case u.ChannelPost != nil:
		return u.ChannelPost
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost
	}
	return nil
}

// messageText prefers the text body; media posts carry the job ad in
// the caption.
func messageText(msg *tgbotapi.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}

// chatIdentity maps a bot API chat to the router's identity. The bot
// API reports full ids, so the channel marker stays unset.
func chatIdentity(c *tgbotapi.Chat) router.Chat {
	username := ""
	if c.UserName != "" {
		username = "@" + strings.ToLower(c.UserName)
	}
	return router.Chat{
		ID:       strconv.FormatInt(c.ID, 10),
		Username: username,
		Title:    c.Title,
	}
}

// originLink builds a jump link to the source message. Public chats
// get a t.me link, private supergroups and channels the t.me/c form,
// anything else falls back to the tg:// scheme.
func originLink(msg *tgbotapi.Message) string {
	if msg.Chat.UserName != "" {
		return fmt.Sprintf("https://t.me/%s/%d", msg.Chat.UserName, msg.MessageID)
	}
	full := strconv.FormatInt(msg.Chat.ID, 10)
	if inner, ok := strings.CutPrefix(full, "-100"); ok {
		return fmt.Sprintf("https://t.me/c/%s/%d", inner, msg.MessageID)
	}
	return fmt.Sprintf("tg://openmessage?chat_id=%s&message_id=%d", full, msg.MessageID)
}
