package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"pm_whitelist/internal/bot"
	"pm_whitelist/internal/config"
	"pm_whitelist/internal/storage"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateBot(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	log := config.NewLogger(cfg.LogLevel, os.Stderr)

	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		log.Error("create data directory", "path", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := storage.NewFile(cfg.WhiteListPath())
	if ids, err := store.Load(ctx); err != nil {
		// Messages are rejected with a notice until the file becomes usable.
		log.Warn("white list unavailable", "path", store.Path(), "error", err)
	} else {
		log.Info("white list loaded", "path", store.Path(), "count", len(ids))
	}

	set := metrics.NewSet()

	b, err := bot.New(cfg.TelegramBotToken, cfg, store, set, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	var srv *http.Server
	if cfg.MetricsAddr != "" {
		srv = newMetricsServer(cfg.MetricsAddr, set)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}

	log.Info("starting bot", "owner_id", cfg.OwnerID)

	b.Run(ctx)

	if srv != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		stopMetricsServer(shutdownCtx, srv, log)
	}

	log.Info("bot stopped")
}
