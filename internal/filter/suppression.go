package filter

import "pm_whitelist/internal/model"

// Suppression records senders that already received the one-time rejection
// notice. It lives for the lifetime of the process and is not safe for
// concurrent use.
type Suppression struct {
	notified map[string]model.Identity
}

// NewSuppression returns an empty set.
func NewSuppression() *Suppression {
	return &Suppression{notified: make(map[string]model.Identity)}
}

// MarkNotified records that id has been sent the rejection notice.
func (s *Suppression) MarkNotified(id model.Identity) {
	s.notified[id.Key()] = id
}

// IsNotified reports whether id has already been sent the rejection notice.
func (s *Suppression) IsNotified(id model.Identity) bool {
	_, ok := s.notified[id.Key()]
	return ok
}

// Clear forgets id, so its next rejected message is answered again.
func (s *Suppression) Clear(id model.Identity) {
	delete(s.notified, id.Key())
}
