package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/PhonesBot_Go/internal/bootstrap"
	"github.com/osse101/PhonesBot_Go/internal/config"
	"github.com/osse101/PhonesBot_Go/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "phonesbot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load reads .env, so it runs before the environment is validated
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}

	bootstrap.SetupLogger(cfg)
	for _, w := range warnings {
		logger.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := app.Server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, app)
	return err
}
