// Package main acnode server API
//
// @title           acnode server API
// @version         1.0
// @description     Сервер контроля доступа к инструментам: протокол узлов и API для внешних систем.

// @BasePath  /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name API-KEY
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/acnode-server/internal/app/acserver"
	"github.com/magabrotheeeer/acnode-server/internal/config"
	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:       sl.ParseLevel(cfg.LogLevel),
		ReplaceAttr: sl.ReplaceLevel,
	}))

	logger.Info("starting acserver", slog.String("env", cfg.Env))
	logger.Debug("loaded config", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := acserver.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("acserver stopped gracefully")
}
