package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/acnode-server/internal/app/auditsink"
	"github.com/magabrotheeeer/acnode-server/internal/config"
	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:       sl.ParseLevel(cfg.LogLevel),
		ReplaceAttr: sl.ReplaceLevel,
	}))
	logger.Info("starting audit-sink", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := auditsink.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize audit-sink", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("audit-sink stopped with error", sl.Err(err))
		os.Exit(1)
	}
}
