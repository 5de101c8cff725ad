// Package config handles application configuration from flags, an optional
// TOML file and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	flag "github.com/spf13/pflag"

	"pm_whitelist/internal/storage"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken string `koanf:"telegram-bot-token"`
	DataDir          string `koanf:"data-dir"`
	LogLevel         string `koanf:"log-level"`
	OwnerID          int64  `koanf:"owner-id"`
	OwnerName        string `koanf:"owner-name"`
	MetricsAddr      string `koanf:"metrics-addr"`

	// Positional arguments left after flag parsing.
	Args []string `koanf:"-"`
}

// Environment variables and the config keys they set.
var envKeys = map[string]string{
	"TELEGRAM_BOT_TOKEN": "telegram-bot-token",
	"DATA_DIR":           "data-dir",
	"LOG_LEVEL":          "log-level",
	"OWNER_ID":           "owner-id",
	"OWNER_NAME":         "owner-name",
	"METRICS_ADDR":       "metrics-addr",
}

// Load builds the configuration from args (without the program name).
// Explicitly set flags win over environment variables, which win over the
// TOML file given with --config, which wins over flag defaults.
func Load(args []string) (*Config, error) {
	f := flag.NewFlagSet("pm_whitelist", flag.ContinueOnError)
	f.String("config", "", "path to an optional TOML configuration file")
	f.String("telegram-bot-token", "", "Telegram bot API token")
	f.String("data-dir", "./data", "directory holding "+storage.FileName)
	f.String("log-level", "info", "debug | info | warn | error")
	f.Int64("owner-id", 0, "Telegram user ID whose private messages are filtered")
	f.String("owner-name", "", "name used in the automated reply, defaults to the bot username")
	f.String("metrics-addr", "", "listen address for the /metrics endpoint, empty disables it")

	if err := f.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	ko := koanf.New(".")
	if path, _ := f.GetString("config"); path != "" {
		if err := ko.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	if err := ko.Load(confmap.Provider(envValues(), "."), nil); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := ko.Load(posflag.Provider(f, ".", ko), nil); err != nil {
		return nil, fmt.Errorf("read flags: %w", err)
	}

	var cfg Config
	if err := ko.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Args = f.Args()
	return &cfg, nil
}

func envValues() map[string]any {
	out := make(map[string]any)
	for env, key := range envKeys {
		if v := os.Getenv(env); v != "" {
			out[key] = v
		}
	}
	return out
}

// WhiteListPath returns the location of the allow-list file.
func (c *Config) WhiteListPath() string {
	return filepath.Join(c.DataDir, storage.FileName)
}

// ValidateBot checks the settings the Telegram bot cannot run without.
func (c *Config) ValidateBot() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.OwnerID == 0 {
		return fmt.Errorf("OWNER_ID is required")
	}
	return nil
}

// IsOwner reports whether userID is the account the bot filters for.
func (c *Config) IsOwner(userID int64) bool {
	return c.OwnerID != 0 && userID == c.OwnerID
}
