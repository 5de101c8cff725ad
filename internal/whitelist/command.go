package whitelist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/VictoriaMetrics/metrics"

	"pm_whitelist/internal/model"
	"pm_whitelist/internal/storage"
)

// Subcommand names. They are matched exactly.
const (
	CmdAdd  = "add"
	CmdDel  = "del"
	CmdView = "view"

	// Metric label for names that match no subcommand.
	cmdUnknown = "unknown"
)

type commandHandler func(ctx context.Context, ids []model.Identity) error

// Dispatcher routes allow-list subcommands to the Admin.
type Dispatcher struct {
	admin    *Admin
	notifier Notifier
	metrics  *metrics.Set
	handlers map[string]commandHandler
}

// NewDispatcher creates a Dispatcher. Storage failures are reported to the
// user through notifier.
func NewDispatcher(admin *Admin, notifier Notifier, m *metrics.Set) *Dispatcher {
	d := &Dispatcher{
		admin:    admin,
		notifier: notifier,
		metrics:  m,
	}
	d.handlers = map[string]commandHandler{
		CmdAdd:  d.add,
		CmdDel:  d.del,
		CmdView: d.view,
	}
	return d
}

// Dispatch runs a whitespace separated command line such as "add alice bob".
func (d *Dispatcher) Dispatch(ctx context.Context, line string) error {
	return d.Run(ctx, strings.Fields(line))
}

// Run executes argv, where argv[0] is the subcommand. It returns a
// *CommandError for unknown subcommands or missing identities, and the
// storage error, after notifying the user, when persistence fails.
func (d *Dispatcher) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return &CommandError{Reason: "missing subcommand, use: " + Usage}
	}

	name := argv[0]
	h, ok := d.handlers[name]
	if !ok {
		d.count(cmdUnknown, "invalid")
		return &CommandError{Command: name, Reason: "unknown subcommand, use: " + Usage}
	}

	ids := make([]model.Identity, 0, len(argv)-1)
	for _, a := range argv[1:] {
		ids = append(ids, model.Identity(a))
	}

	if err := h(ctx, ids); err != nil {
		var ce *CommandError
		var se *storage.StorageError
		switch {
		case errors.As(err, &ce):
			d.count(name, "invalid")
		case errors.As(err, &se):
			d.count(name, "error")
			d.metrics.GetOrCreateCounter(fmt.Sprintf(metricStorageErrors, name)).Inc()
			d.notifier.EmitNotice(fmt.Sprintf("Private message white list %s failed: %v", name, err))
		default:
			d.count(name, "error")
		}
		return err
	}

	d.count(name, "ok")
	return nil
}

func (d *Dispatcher) add(ctx context.Context, ids []model.Identity) error {
	if len(ids) == 0 {
		return &CommandError{Command: CmdAdd, Reason: "at least one nick is required"}
	}
	return d.admin.Add(ctx, ids)
}

func (d *Dispatcher) del(ctx context.Context, ids []model.Identity) error {
	if len(ids) == 0 {
		return &CommandError{Command: CmdDel, Reason: "a nick is required"}
	}
	return d.admin.Delete(ctx, ids[0])
}

func (d *Dispatcher) view(ctx context.Context, _ []model.Identity) error {
	_, err := d.admin.View(ctx)
	return err
}

func (d *Dispatcher) count(command, result string) {
	d.metrics.GetOrCreateCounter(fmt.Sprintf(metricCommands, command, result)).Inc()
}
