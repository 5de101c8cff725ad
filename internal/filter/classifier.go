// Package filter implements the private message classification engine.
package filter

import (
	"context"

	"pm_whitelist/internal/model"
)

// Membership reports whether a sender is allow-listed.
type Membership interface {
	Contains(ctx context.Context, id model.Identity) (bool, error)
}

// Classifier decides what happens to a private message based on the
// allow-list and the senders already notified this session.
type Classifier struct {
	allow    Membership
	notified *Suppression
}

// NewClassifier creates a Classifier over the given allow-list and
// suppression set.
func NewClassifier(allow Membership, notified *Suppression) *Classifier {
	return &Classifier{allow: allow, notified: notified}
}

// Classify returns the decision for a message from sender.
//
// Allow-listed senders pass. An unknown sender is rejected with a notice the
// first time and silently afterwards. If the allow-list cannot be read the
// message is rejected with a notice, the suppression set is left untouched
// and the storage error is returned alongside the decision.
func (c *Classifier) Classify(ctx context.Context, sender model.Identity) (model.Decision, error) {
	allowed, err := c.allow.Contains(ctx, sender)
	if err != nil {
		return model.RejectWithNotice, err
	}
	if allowed {
		return model.Pass, nil
	}
	if c.notified.IsNotified(sender) {
		return model.RejectSilently, nil
	}
	c.notified.MarkNotified(sender)
	return model.RejectWithNotice, nil
}
