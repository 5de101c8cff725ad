package whitelist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pm_whitelist/internal/model"
	"pm_whitelist/internal/storage"
)

func TestInterceptorUnknownSender(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "alice")

	first := f.interceptor.Handle(ctx, pm(":mallory!m@evil.example PRIVMSG me :hi", 42, 7))
	if diff := cmp.Diff(model.RejectWithNotice, first); diff != "" {
		t.Fatalf("first decision (-want +got):\n%s", diff)
	}
	wantCalls := []string{
		"switch 42",
		"reply 42: " + FormatAutoReply("me"),
		"close 42/7",
		"switch 1",
	}
	if diff := cmp.Diff(wantCalls, f.host.calls); diff != "" {
		t.Errorf("host calls (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"mallory tried to send a private message."}, f.host.notices); diff != "" {
		t.Errorf("notices (-want +got):\n%s", diff)
	}

	f.host.calls = nil
	f.host.notices = nil

	second := f.interceptor.Handle(ctx, pm(":Mallory!m@evil.example PRIVMSG me :again", 42, 8))
	if diff := cmp.Diff(model.RejectSilently, second); diff != "" {
		t.Fatalf("second decision (-want +got):\n%s", diff)
	}
	wantCalls = []string{"switch 42", "close 42/8", "switch 1"}
	if diff := cmp.Diff(wantCalls, f.host.calls); diff != "" {
		t.Errorf("host calls (-want +got):\n%s", diff)
	}
	if len(f.host.notices) != 0 {
		t.Errorf("no notice expected on repeat contact, got %v", f.host.notices)
	}
	if !f.suppression.IsNotified("mallory") {
		t.Error("sender should be suppressed after the first notice")
	}

	if got := f.counter(fmt.Sprintf(metricMessages, model.RejectWithNotice)); got != 1 {
		t.Errorf("reject_notice counter = %d, want 1", got)
	}
	if got := f.counter(fmt.Sprintf(metricMessages, model.RejectSilently)); got != 1 {
		t.Errorf("reject_silent counter = %d, want 1", got)
	}
}

func TestInterceptorAllowListedSender(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "alice", "bob")

	got := f.interceptor.Handle(ctx, pm(":Alice!a@home.example PRIVMSG me :hi", 42, 1))
	if diff := cmp.Diff(model.Pass, got); diff != "" {
		t.Fatalf("decision (-want +got):\n%s", diff)
	}
	if len(f.host.calls) != 0 {
		t.Errorf("pass must not touch the host, got %v", f.host.calls)
	}
}

func TestInterceptorAddAfterRejection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.interceptor.Handle(ctx, pm("carol", 5, 1))
	f.interceptor.Handle(ctx, pm("carol", 5, 2))

	if err := f.dispatcher.Dispatch(ctx, "add carol"); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if f.suppression.IsNotified("carol") {
		t.Error("carol should be cleared from suppression")
	}

	got := f.interceptor.Handle(ctx, pm("CAROL", 5, 3))
	if diff := cmp.Diff(model.Pass, got); diff != "" {
		t.Errorf("decision after add (-want +got):\n%s", diff)
	}

	// Removing the sender again restarts the first-contact cycle.
	if err := f.dispatcher.Dispatch(ctx, "del carol"); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	got = f.interceptor.Handle(ctx, pm("carol", 5, 4))
	if diff := cmp.Diff(model.RejectWithNotice, got); diff != "" {
		t.Errorf("decision after delete (-want +got):\n%s", diff)
	}
}

func TestInterceptorStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	store := storage.NewFile(filepath.Join(t.TempDir(), "missing", storage.FileName))
	f := newFixtureWithStore(t, store)

	for i := 1; i <= 2; i++ {
		got := f.interceptor.Handle(ctx, pm("mallory", 9, i))
		if diff := cmp.Diff(model.RejectWithNotice, got); diff != "" {
			t.Fatalf("call %d decision (-want +got):\n%s", i, diff)
		}
	}
	if f.suppression.IsNotified("mallory") {
		t.Error("sender must not be suppressed while storage is down")
	}
	if len(f.host.notices) != 0 {
		t.Errorf("no first-contact notice on storage failure, got %v", f.host.notices)
	}
	if got := f.counter(fmt.Sprintf(metricStorageErrors, "classify")); got != 2 {
		t.Errorf("storage error counter = %d, want 2", got)
	}
}

func TestInterceptorMissingFileIsCreated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), storage.FileName)
	f := newFixtureWithStore(t, storage.NewFile(path))

	// The first message creates an empty list and is handled as an unknown
	// sender, so the repeat is silenced instead of noticed again.
	want := []model.Decision{model.RejectWithNotice, model.RejectSilently}
	var got []model.Decision
	for i := 1; i <= len(want); i++ {
		got = append(got, f.interceptor.Handle(ctx, pm("mallory", 9, i)))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decisions (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("white list file not created: %v", err)
	}
	if diff := cmp.Diff([]string{"mallory tried to send a private message."}, f.host.notices); diff != "" {
		t.Errorf("notices (-want +got):\n%s", diff)
	}
	if got := f.counter(fmt.Sprintf(metricStorageErrors, "classify")); got != 0 {
		t.Errorf("storage error counter = %d, want 0", got)
	}
}

func TestInterceptorHostFailuresAreSwallowed(t *testing.T) {
	f := newFixture(t)
	f.host.failAll = true

	got := f.interceptor.Handle(context.Background(), pm("mallory", 3, 1))
	if diff := cmp.Diff(model.RejectWithNotice, got); diff != "" {
		t.Fatalf("decision (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(4, len(f.host.calls)); diff != "" {
		t.Errorf("every reject step should still be attempted (-want +got):\n%s", diff)
	}
}

type contactHost struct {
	*fakeHost
	contacts []model.Identity
}

func (h *contactHost) NotifyFirstContact(sender model.Identity) {
	h.contacts = append(h.contacts, sender)
}

func TestInterceptorContactNotifier(t *testing.T) {
	f := newFixture(t)
	host := &contactHost{fakeHost: f.host}
	in := NewInterceptor(f.interceptor.classifier, host, f.metrics, f.interceptor.log)

	in.Handle(context.Background(), pm("eve", 3, 1))
	in.Handle(context.Background(), pm("eve", 3, 2))

	if diff := cmp.Diff([]model.Identity{"eve"}, host.contacts); diff != "" {
		t.Errorf("first contacts (-want +got):\n%s", diff)
	}
	if len(f.host.notices) != 0 {
		t.Errorf("plain notice should be replaced, got %v", f.host.notices)
	}
}

func TestFormatAutoReply(t *testing.T) {
	want := "AUTOREPLY:  pr3d does not accept unsolicited private messages.  " +
		"Your message didn't reach the recipient.  " +
		"Please ask for your nick to be white listed in-channel.  Thank you."
	if diff := cmp.Diff(want, FormatAutoReply("pr3d")); diff != "" {
		t.Errorf("FormatAutoReply mismatch (-want +got):\n%s", diff)
	}
}
