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

	"redemption-ledger/internal/twin"

	"github.com/kelseyhightower/envconfig"
)

type twinConfig struct {
	Port string `envconfig:"TWIN_PORT" default:"8890"`
	// Verbose logs every fake redemption.
	Verbose bool `envconfig:"TWIN_VERBOSE" default:"false"`
}

func main() {
	var cfg twinConfig
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Error("failed to load twin config", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           twin.New(logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("collaborator twin listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("twin server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("twin shutdown failed", "error", err)
	}
}
