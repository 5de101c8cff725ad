package whitelist

import "pm_whitelist/internal/model"

// Notifier shows human readable feedback to the local user.
type Notifier interface {
	EmitNotice(text string)
}

// Host is the chat client the interceptor acts through.
type Host interface {
	Notifier

	// OwnIdentity returns the local user's identity on the route's network.
	OwnIdentity(route model.Route) model.Identity

	// HomeBuffer returns the buffer to return to after handling a rejection.
	HomeBuffer(route model.Route) model.BufferRef

	SwitchToBuffer(ref model.BufferRef) error
	CloseBuffer(ref model.BufferRef) error

	// SendAutomatedReply writes text to the buffer selected by the last
	// SwitchToBuffer call.
	SendAutomatedReply(text string) error
}

// ContactNotifier is implemented by hosts that present first contact from
// an unknown sender with more than a plain notice.
type ContactNotifier interface {
	NotifyFirstContact(sender model.Identity)
}
