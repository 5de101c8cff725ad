// Package model defines the domain types used across the application.
package model

import "strings"

// Identity is a chat nickname. Identities compare case-insensitively.
type Identity string

// Key returns the lowercase form used for comparisons.
func (id Identity) Key() string {
	return strings.ToLower(string(id))
}

// Equal reports whether two identities match ignoring case.
func (id Identity) Equal(other Identity) bool {
	return id.Key() == other.Key()
}

// ParseSender extracts the nickname from a decorated sender string such as
// ":nick!user@host PRIVMSG me :". An undecorated string is returned as is,
// minus any target or host-mask suffix.
func ParseSender(raw string) Identity {
	s := raw
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[i+1:]
		if j := strings.IndexByte(s, ':'); j >= 0 {
			s = s[:j]
		}
	}
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '!'); i >= 0 {
		s = s[:i]
	}
	return Identity(s)
}

// Decision is the outcome of classifying an inbound private message.
type Decision int

// Supported decisions.
const (
	Pass Decision = iota
	RejectWithNotice
	RejectSilently
)

func (d Decision) String() string {
	switch d {
	case Pass:
		return "pass"
	case RejectWithNotice:
		return "reject_notice"
	case RejectSilently:
		return "reject_silent"
	default:
		return "unknown"
	}
}

// BufferRef points at a conversation in the host client. MessageID is zero
// when the reference names the whole conversation.
type BufferRef struct {
	ChatID    int64
	MessageID int
}

// Route identifies where an inbound message arrived.
type Route struct {
	Buffer BufferRef
}

// PrivateMessage is an inbound private message as delivered by the host.
type PrivateMessage struct {
	RawSender string
	Text      string
	Route     Route
}
