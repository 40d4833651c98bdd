package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/polywatch/config"
	"github.com/alejandrodnm/polywatch/internal/adapters/notify"
	"github.com/alejandrodnm/polywatch/internal/adapters/polymarket"
	"github.com/alejandrodnm/polywatch/internal/adapters/storage"
	"github.com/alejandrodnm/polywatch/internal/application/watcher"
	"github.com/alejandrodnm/polywatch/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one poll cycle per trader and exit")
	dryRun := flag.Bool("dry-run", false, "print notifications to stdout instead of the webhook, no history")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	history := flag.Int("history", 0, "print the last N recorded alerts and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	if *history > 0 {
		printHistory(cfg.Storage.DSN, *history)
		return
	}

	if err := cfg.Validate(!*dryRun); err != nil {
		slog.Error("invalid config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	slog.Info("polywatch starting",
		"config", *configPath,
		"traders", len(cfg.Watcher.Traders),
		"interval", cfg.PollInterval(),
		"min_usdc", cfg.MinUSDC(),
		"webhook", cfg.MaskedWebhook(),
		"dry_run", *dryRun,
		"once", *once,
	)

	client := polymarket.NewClient(cfg.API.DataBase, cfg.API.GammaBase)

	var notifier ports.Notifier = notify.NewWebhook(cfg.Notify.WebhookURL)
	var alerts ports.AlertLog
	if *dryRun {
		notifier = notify.NewConsole()
	} else {
		store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer store.Close()
		alerts = store
	}

	pollCfg := watcher.DefaultPollerConfig()
	pollCfg.Interval = cfg.PollInterval()
	pollCfg.Lookback = cfg.Lookback()
	pollCfg.PageSize = cfg.Watcher.PageSize
	pollCfg.MinUSDC = cfg.MinUSDC()
	pollCfg.MaxSeen = cfg.Watcher.MaxSeen

	w := watcher.New(watcher.Config{
		Traders:        cfg.Watcher.Traders,
		Poller:         pollCfg,
		StartupMessage: cfg.Watcher.StartupMessage,
		RestartDelay:   cfg.RestartDelay(),
	}, client, client, notifier, alerts)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *once {
		if err := w.RunOnce(ctx); err != nil {
			slog.Warn("poll cycle had errors", "err", err)
		}
		return
	}

	if err := w.Run(ctx); err != nil {
		slog.Error("watcher exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("polywatch stopped cleanly")
}

func printHistory(dsn string, limit int) {
	store, err := storage.NewSQLiteStorage(dsn)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", dsn)
		os.Exit(1)
	}
	defer store.Close()

	if err := showHistory(context.Background(), store, notify.NewConsole(), limit); err != nil {
		slog.Error("failed to read history", "err", err)
		os.Exit(1)
	}
}

// showHistory imprime las últimas limit alertas del histórico.
func showHistory(ctx context.Context, journal ports.AlertLog, console *notify.Console, limit int) error {
	alerts, err := journal.RecentAlerts(ctx, limit)
	if err != nil {
		return fmt.Errorf("showHistory: %w", err)
	}
	console.PrintHistory(alerts)
	return nil
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
