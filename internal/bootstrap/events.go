package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osse101/PhonesBot_Go/internal/config"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/metrics"
)

// InitializeEventSystem creates the in-process bus, subscribes the metrics
// collector, and fronts the bus with a resilient publisher whose failures
// land in the dead-letter file.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	metrics.NewEventMetricsCollector().Register(bus)
	logger.Info(LogMsgMetricsCollectorAttached, "event_types", len(event.AllTypes))

	deadLetterPath := cfg.DeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = event.DefaultDeadLetterPath
	}
	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf(ErrMsgCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(bus, EventDefaultMaxRetries, EventDefaultRetryDelay, deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf(ErrMsgCreatePublisherFailed, err)
	}

	logger.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return bus, publisher, nil
}
