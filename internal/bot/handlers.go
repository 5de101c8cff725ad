package bot

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pm_whitelist/internal/model"
	"pm_whitelist/internal/whitelist"
)

const (
	cmdWhitelist = "whitelist"
	cmdWL        = "wl"
)

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Private message white list.

Only people on your white list can reach you here. Everybody else gets one
automated reply and is silenced afterwards.

/whitelist add <nick> [nick...] — allow one or more senders
/whitelist del <nick> — remove a sender (exact spelling)
/whitelist view — show the white list

/wl is a shorthand for /whitelist.`)
}

func (b *Bot) handleWhitelist(ctx context.Context, chatID int64, args string) {
	err := b.commands.Dispatch(ctx, args)
	if err == nil {
		return
	}

	var ce *whitelist.CommandError
	if errors.As(err, &ce) {
		b.reply(chatID, "Usage: /"+cmdWhitelist+" "+whitelist.Usage)
		return
	}
	// Storage failures were already reported to the owner as a notice.
	b.log.Error("whitelist command", "args", args, "error", err)
}

func (b *Bot) handlePrivateMessage(ctx context.Context, msg *tgbotapi.Message) {
	pm := model.PrivateMessage{
		RawSender: senderName(msg.From),
		Text:      msg.Text,
		Route: model.Route{
			Buffer: model.BufferRef{ChatID: msg.Chat.ID, MessageID: msg.MessageID},
		},
	}
	if b.interceptor.Handle(ctx, pm) != model.Pass {
		return
	}

	fwd := tgbotapi.NewForward(b.cfg.OwnerID, msg.Chat.ID, msg.MessageID)
	if _, err := b.api.Send(fwd); err != nil {
		b.log.Error("forward message", "from_chat_id", msg.Chat.ID, "error", err)
	}
}
