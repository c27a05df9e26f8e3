package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"parimutuel-advisor/internal/alerts"
	"parimutuel-advisor/internal/board"
	"parimutuel-advisor/internal/config"
	"parimutuel-advisor/internal/decision"
	"parimutuel-advisor/internal/display"
	"parimutuel-advisor/internal/engine"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Loading configuration: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	formatter, err := display.NewFormatter(cfg.Locale)
	if err != nil {
		log.Fatalf("Invalid locale: %v", err)
	}

	b := board.New(cfg.Options...)
	b.AutoComplement = cfg.AutoComplement
	if cfg.Bankroll > 0 {
		b.SetBankroll(strconv.FormatFloat(cfg.Bankroll, 'f', -1, 64))
	}

	notifier := alerts.NewNotifier(cfg.AlertCooldown)
	notifier.LogStartup(fmt.Sprintf("options=%s bankroll=%s locale=%s kelly_fraction=%.2f auto_complement=%t",
		strings.Join(cfg.Options, ","), config.FormatBankroll(cfg.Bankroll), cfg.Locale,
		cfg.KellyFraction, cfg.AutoComplement))

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, stopping...")
		cancel()
	}()

	e := engine.New(b, notifier, formatter, decision.Config{KellyFraction: cfg.KellyFraction}, os.Stdout)
	if err := e.Run(ctx, os.Stdin); err != nil {
		slog.Error("Session ended with error", "error", err)
		os.Exit(1)
	}
}
