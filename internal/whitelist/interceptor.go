package whitelist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VictoriaMetrics/metrics"

	"pm_whitelist/internal/filter"
	"pm_whitelist/internal/model"
)

const autoReplyFormat = "AUTOREPLY:  %s does not accept unsolicited private messages.  " +
	"Your message didn't reach the recipient.  " +
	"Please ask for your nick to be white listed in-channel.  Thank you."

// FormatAutoReply returns the automated reply sent to rejected senders on
// behalf of own.
func FormatAutoReply(own model.Identity) string {
	return fmt.Sprintf(autoReplyFormat, own)
}

// Interceptor applies the classifier's decision to inbound private messages.
type Interceptor struct {
	classifier *filter.Classifier
	host       Host
	metrics    *metrics.Set
	log        *slog.Logger
}

// NewInterceptor creates an Interceptor acting through host.
func NewInterceptor(classifier *filter.Classifier, host Host, m *metrics.Set, log *slog.Logger) *Interceptor {
	return &Interceptor{
		classifier: classifier,
		host:       host,
		metrics:    m,
		log:        log,
	}
}

// Handle classifies msg and performs the reject actions through the host.
// On Pass nothing is done and the host delivers the message as usual. Host
// failures are logged, never returned.
func (i *Interceptor) Handle(ctx context.Context, msg model.PrivateMessage) model.Decision {
	sender := model.ParseSender(msg.RawSender)

	decision, err := i.classifier.Classify(ctx, sender)
	if err != nil {
		i.log.Error("allow-list unavailable, rejecting", "sender", sender, "error", err)
		i.metrics.GetOrCreateCounter(fmt.Sprintf(metricStorageErrors, "classify")).Inc()
	}
	i.metrics.GetOrCreateCounter(fmt.Sprintf(metricMessages, decision)).Inc()
	i.log.Debug("private message", "sender", sender, "decision", decision, "text_len", len(msg.Text))

	if decision == model.Pass {
		return decision
	}

	i.reject(msg.Route, decision == model.RejectWithNotice)

	if decision == model.RejectWithNotice && err == nil {
		i.log.Info("first contact from unknown sender", "sender", sender)
		if cn, ok := i.host.(ContactNotifier); ok {
			cn.NotifyFirstContact(sender)
		} else {
			i.host.EmitNotice(fmt.Sprintf("%s tried to send a private message.", sender))
		}
	}
	return decision
}

func (i *Interceptor) reject(route model.Route, autoReply bool) {
	home := i.host.HomeBuffer(route)
	from := route.Buffer

	if err := i.host.SwitchToBuffer(from); err != nil {
		i.log.Error("switch to sender buffer", "chat_id", from.ChatID, "error", err)
	}
	if autoReply {
		text := FormatAutoReply(i.host.OwnIdentity(route))
		if err := i.host.SendAutomatedReply(text); err != nil {
			i.log.Error("send automated reply", "chat_id", from.ChatID, "error", err)
		}
	}
	if err := i.host.CloseBuffer(from); err != nil {
		i.log.Error("close sender buffer", "chat_id", from.ChatID, "error", err)
	}
	if err := i.host.SwitchToBuffer(home); err != nil {
		i.log.Error("switch to home buffer", "chat_id", home.ChatID, "error", err)
	}
}
