package bot

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pm_whitelist/internal/model"
	"pm_whitelist/internal/whitelist"
)

var errNoBuffer = errors.New("no chat selected")

// OwnIdentity returns the name the automated reply is sent on behalf of.
func (b *Bot) OwnIdentity(model.Route) model.Identity {
	return b.ownName
}

// HomeBuffer returns the owner's private chat.
func (b *Bot) HomeBuffer(model.Route) model.BufferRef {
	return model.BufferRef{ChatID: b.cfg.OwnerID}
}

// SwitchToBuffer selects the chat SendAutomatedReply writes to.
func (b *Bot) SwitchToBuffer(ref model.BufferRef) error {
	b.current = ref.ChatID
	return nil
}

// SendAutomatedReply sends text to the selected chat.
func (b *Bot) SendAutomatedReply(text string) error {
	if b.current == 0 {
		return errNoBuffer
	}
	if err := b.send(b.current, text); err != nil {
		return fmt.Errorf("send automated reply: %w", err)
	}
	return nil
}

// CloseBuffer deletes the referenced inbound message from the sender's chat.
// A reference without a message is a no-op.
func (b *Bot) CloseBuffer(ref model.BufferRef) error {
	if ref.MessageID == 0 {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(ref.ChatID, ref.MessageID)); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// EmitNotice shows text to the owner.
func (b *Bot) EmitNotice(text string) {
	b.SendMessage(b.cfg.OwnerID, text)
}

// NotifyFirstContact tells the owner an unknown sender tried to write and
// offers to allow-list them.
func (b *Bot) NotifyFirstContact(sender model.Identity) {
	msg := tgbotapi.NewMessage(b.cfg.OwnerID, fmt.Sprintf("%s tried to send a private message.", sender))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Allow", cbAllow+":"+string(sender)),
			tgbotapi.NewInlineKeyboardButtonData("Ignore", cbIgnore+":"+string(sender)),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send first contact notice", "sender", sender, "error", err)
	}
}

var (
	_ whitelist.Host            = (*Bot)(nil)
	_ whitelist.ContactNotifier = (*Bot)(nil)
)
