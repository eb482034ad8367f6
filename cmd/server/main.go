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

	"github.com/templui/footprint/internal/app"
	"github.com/templui/footprint/internal/config"
	"github.com/templui/footprint/internal/logger"
	"github.com/templui/footprint/internal/routes"
)

const shutdownTimeout = 15 * time.Second

func main() {
	err := run()
	if err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flush := logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)
	defer flush()

	app, err := app.New(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(app),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Start()

	errc := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", cfg.AppURL)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err = <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = app.Close(context.Background())
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		slog.Error("failed to shut down server", "error", err)
	}

	err = app.Close(shutdownCtx)
	if err != nil {
		slog.Error("failed to close app", "error", err)
	}
	return nil
}
