package whitelist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/VictoriaMetrics/metrics"

	"pm_whitelist/internal/filter"
	"pm_whitelist/internal/model"
	"pm_whitelist/internal/storage"
)

// --- mocks ---

type fakeHost struct {
	own     model.Identity
	home    model.BufferRef
	current model.BufferRef
	calls   []string
	notices []string
	failAll bool
}

func (h *fakeHost) EmitNotice(text string) {
	h.notices = append(h.notices, text)
}

func (h *fakeHost) OwnIdentity(model.Route) model.Identity { return h.own }

func (h *fakeHost) HomeBuffer(model.Route) model.BufferRef { return h.home }

func (h *fakeHost) SwitchToBuffer(ref model.BufferRef) error {
	h.calls = append(h.calls, fmt.Sprintf("switch %d", ref.ChatID))
	h.current = ref
	return h.err()
}

func (h *fakeHost) CloseBuffer(ref model.BufferRef) error {
	h.calls = append(h.calls, fmt.Sprintf("close %d/%d", ref.ChatID, ref.MessageID))
	return h.err()
}

func (h *fakeHost) SendAutomatedReply(text string) error {
	h.calls = append(h.calls, fmt.Sprintf("reply %d: %s", h.current.ChatID, text))
	return h.err()
}

func (h *fakeHost) err() error {
	if h.failAll {
		return errors.New("host unavailable")
	}
	return nil
}

// failingStore wraps a real store and fails every Save.
type failingStore struct {
	*storage.File
}

func (s failingStore) Save(context.Context, []model.Identity) error {
	return &storage.StorageError{Op: "write", Path: s.Path(), Err: os.ErrPermission}
}

// --- helpers ---

type fixture struct {
	store       *storage.File
	suppression *filter.Suppression
	host        *fakeHost
	metrics     *metrics.Set
	admin       *Admin
	dispatcher  *Dispatcher
	interceptor *Interceptor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStore(t, storage.NewFile(filepath.Join(t.TempDir(), storage.FileName)))
}

func newFixtureWithStore(t *testing.T, store storage.Storage) *fixture {
	t.Helper()
	f := &fixture{
		suppression: filter.NewSuppression(),
		host:        &fakeHost{own: "me", home: model.BufferRef{ChatID: 1}},
		metrics:     metrics.NewSet(),
	}
	switch s := store.(type) {
	case *storage.File:
		f.store = s
	case failingStore:
		f.store = s.File
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.admin = NewAdmin(store, f.suppression, f.host)
	f.dispatcher = NewDispatcher(f.admin, f.host, f.metrics)
	f.interceptor = NewInterceptor(filter.NewClassifier(store, f.suppression), f.host, f.metrics, log)
	return f
}

func (f *fixture) seed(t *testing.T, ids ...model.Identity) {
	t.Helper()
	if err := f.store.Save(context.Background(), ids); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func (f *fixture) load(t *testing.T) []model.Identity {
	t.Helper()
	ids, err := f.store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return ids
}

func (f *fixture) counter(name string) uint64 {
	return f.metrics.GetOrCreateCounter(name).Get()
}

func pm(sender string, chatID int64, messageID int) model.PrivateMessage {
	return model.PrivateMessage{
		RawSender: sender,
		Text:      "hello",
		Route:     model.Route{Buffer: model.BufferRef{ChatID: chatID, MessageID: messageID}},
	}
}
