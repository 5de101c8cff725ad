// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"

	"pm_whitelist/internal/model"
)

// Storage is the interface for allow-list persistence. Implementations read
// the backing store on every call and never cache the list.
type Storage interface {
	// Load returns the stored identities in file order.
	Load(ctx context.Context) ([]model.Identity, error)

	// Save replaces the stored list with ids.
	Save(ctx context.Context, ids []model.Identity) error

	// Contains reports whether id is stored, ignoring case.
	Contains(ctx context.Context, id model.Identity) (bool, error)
}
