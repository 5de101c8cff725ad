package whitelist

import (
	"context"
	"fmt"
	"slices"

	"pm_whitelist/internal/filter"
	"pm_whitelist/internal/model"
	"pm_whitelist/internal/storage"
)

// Admin maintains the persisted allow-list.
type Admin struct {
	store    storage.Storage
	notified *filter.Suppression
	notifier Notifier
}

// NewAdmin creates an Admin over store. Identities added to the list are
// cleared from notified.
func NewAdmin(store storage.Storage, notified *filter.Suppression, notifier Notifier) *Admin {
	return &Admin{store: store, notified: notified, notifier: notifier}
}

// Add appends every identity in ids that is not already listed, ignoring
// case, and persists the list once. An empty ids is a no-op.
func (a *Admin) Add(ctx context.Context, ids []model.Identity) error {
	if len(ids) == 0 {
		return nil
	}

	list, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load allow-list: %w", err)
	}
	for _, id := range ids {
		if !containsFold(list, id) {
			list = append(list, id)
		}
	}
	if err := a.store.Save(ctx, list); err != nil {
		return fmt.Errorf("save allow-list: %w", err)
	}

	for _, id := range ids {
		a.notified.Clear(id)
		a.notifier.EmitNotice("Private message white list add: " + string(id))
	}
	return nil
}

// Delete removes every entry equal to id. The comparison is case-sensitive,
// unlike Add and lookups: deleting "Bob" keeps a stored "bob".
func (a *Admin) Delete(ctx context.Context, id model.Identity) error {
	list, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load allow-list: %w", err)
	}
	kept := slices.DeleteFunc(list, func(stored model.Identity) bool {
		return stored == id
	})
	if err := a.store.Save(ctx, kept); err != nil {
		return fmt.Errorf("save allow-list: %w", err)
	}

	a.notifier.EmitNotice("Private message white list delete: " + string(id))
	return nil
}

// View returns the allow-list sorted case-sensitively and shows it to the
// user.
func (a *Admin) View(ctx context.Context) ([]model.Identity, error) {
	list, err := a.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load allow-list: %w", err)
	}
	slices.Sort(list)

	a.notifier.EmitNotice("*** Begin private message white list:")
	for _, id := range list {
		a.notifier.EmitNotice(string(id))
	}
	a.notifier.EmitNotice("*** End private message white list")
	return list, nil
}

func containsFold(list []model.Identity, id model.Identity) bool {
	return slices.ContainsFunc(list, id.Equal)
}
