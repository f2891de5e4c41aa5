package bootstrap

import (
	"context"

	"github.com/osse101/PhonesBot_Go/internal/logger"
)

// GracefulShutdown stops the application in dependency order:
//  1. the HTTP server stops accepting requests and drains in-flight ones
//  2. the event publisher flushes its retry queue
//  3. the store closes
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, app *App) {
	if app.Server != nil {
		logger.Info(LogMsgShuttingDownServer)
		if err := app.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if app.Publisher != nil {
		logger.Info(LogMsgShuttingDownEventPublisher)
		if err := app.Publisher.Shutdown(ctx); err != nil {
			logger.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if app.Store != nil {
		logger.Info(LogMsgClosingStore)
		app.Store.Close()
	}

	logger.Info(LogMsgServerStopped)
}
