// Command wlctl edits the private message white list file offline.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/VictoriaMetrics/metrics"

	"pm_whitelist/internal/config"
	"pm_whitelist/internal/filter"
	"pm_whitelist/internal/storage"
	"pm_whitelist/internal/whitelist"
)

type printer struct {
	w io.Writer
}

func (p printer) EmitNotice(text string) {
	fmt.Fprintln(p.w, text)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if len(cfg.Args) == 0 {
		usage(stderr)
		return 2
	}

	log := config.NewLogger(cfg.LogLevel, stderr)
	out := printer{w: stdout}

	store := storage.NewFile(cfg.WhiteListPath())
	admin := whitelist.NewAdmin(store, filter.NewSuppression(), out)
	d := whitelist.NewDispatcher(admin, out, metrics.NewSet())

	if err := d.Run(context.Background(), cfg.Args); err != nil {
		var ce *whitelist.CommandError
		if errors.As(err, &ce) {
			fmt.Fprintln(stderr, ce)
			usage(stderr)
			return 2
		}
		log.Error("command failed", "path", store.Path(), "error", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wlctl [--data-dir dir] [--config file.toml] <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <nick> [nick...]   Add one or more nicks")
	fmt.Fprintln(w, "  del <nick>             Delete a nick (exact spelling)")
	fmt.Fprintln(w, "  view                   Show the white list")
}
