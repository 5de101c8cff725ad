package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	cbAllow  = "allow"
	cbIgnore = "ignore"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	callback := tgbotapi.NewCallback(cb.ID, "")
	if _, err := b.api.Request(callback); err != nil {
		b.log.Error("send callback ack", "error", err)
	}

	if cb.From == nil || !b.cfg.IsOwner(cb.From.ID) {
		return
	}

	action, nick, ok := strings.Cut(cb.Data, ":")
	if !ok || nick == "" {
		return
	}

	b.log.Info("callback",
		"action", action,
		"nick", nick,
		"user_id", cb.From.ID,
	)

	switch action {
	case cbAllow:
		b.handleWhitelist(ctx, b.cfg.OwnerID, "add "+nick)
	case cbIgnore:
		// The sender stays suppressed for the rest of the session.
	}
}
