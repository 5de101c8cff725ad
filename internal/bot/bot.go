package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/VictoriaMetrics/metrics"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pm_whitelist/internal/config"
	"pm_whitelist/internal/filter"
	"pm_whitelist/internal/model"
	"pm_whitelist/internal/storage"
	"pm_whitelist/internal/whitelist"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot filters the owner's private messages and serves the owner's
// allow-list commands.
type Bot struct {
	api         telegramAPI
	cfg         *config.Config
	interceptor *whitelist.Interceptor
	commands    *whitelist.Dispatcher
	ownName     model.Identity
	current     int64
	log         *slog.Logger
}

// New creates a Bot with the given Telegram token, allow-list store and
// config.
func New(token string, cfg *config.Config, store storage.Storage, m *metrics.Set, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return newBot(api, model.Identity(api.Self.UserName), cfg, store, m, log), nil
}

func newBot(api telegramAPI, self model.Identity, cfg *config.Config, store storage.Storage, m *metrics.Set, log *slog.Logger) *Bot {
	b := &Bot{
		api:     api,
		cfg:     cfg,
		ownName: self,
		log:     log,
	}
	if cfg.OwnerName != "" {
		b.ownName = model.Identity(cfg.OwnerName)
	}

	notified := filter.NewSuppression()
	admin := whitelist.NewAdmin(store, notified, b)
	b.commands = whitelist.NewDispatcher(admin, b, m)
	b.interceptor = whitelist.NewInterceptor(filter.NewClassifier(store, notified), b, m, log)
	return b
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
// Updates are handled one at a time.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil || !msg.Chat.IsPrivate() {
		return
	}
	if b.cfg.IsOwner(msg.From.ID) {
		if msg.IsCommand() {
			b.handleCommand(ctx, msg)
		}
		return
	}
	b.handlePrivateMessage(ctx, msg)
}

// SendMessage sends a text message to the given chat.
func (b *Bot) SendMessage(chatID int64, text string) {
	if err := b.send(chatID, text); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) reply(chatID int64, text string) {
	b.SendMessage(chatID, text)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := msg.Command()
	args := msg.CommandArguments()
	chatID := msg.Chat.ID

	b.log.Debug("command", "cmd", cmd, "args", args, "chat_id", chatID)

	switch cmd {
	case "start", "help":
		b.handleHelp(chatID)
	case cmdWhitelist, cmdWL:
		b.handleWhitelist(ctx, chatID, args)
	default:
		b.reply(chatID, "Unknown command. Use /help for a list of commands.")
	}
}

// senderName returns the identity a Telegram user is allow-listed under:
// the username, or the numeric user ID for accounts without one.
func senderName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return strconv.FormatInt(u.ID, 10)
}
