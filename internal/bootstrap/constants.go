package bootstrap

import "time"

// DirPermission is the permission for directories created at startup
const DirPermission = 0o755

// Event system defaults
const (
	EventDefaultMaxRetries = 5
	EventDefaultRetryDelay = 2 * time.Second
)

// Log messages for startup
const (
	LogMsgStartingPhonesBot        = "Starting PhonesBot"
	LogMsgConfigurationLoaded      = "Configuration loaded"
	LogMsgStoreOpened              = "Store opened"
	LogMsgCatalogLoaded            = "Catalog loaded"
	LogMsgTuningLoaded             = "Tuning loaded"
	LogMsgEventSystemInitialized   = "Event system initialized"
	LogMsgMetricsCollectorAttached = "Metrics collector registered"
	LogMsgDevModeEnabled           = "DEV_MODE enabled, cooldowns are bypassed"
)

// Error messages for startup
const (
	ErrMsgOpenStoreFailed        = "failed to open store: %w"
	ErrMsgMigrateFailed          = "failed to migrate store: %w"
	ErrMsgLoadCatalogFailed      = "failed to load catalog: %w"
	ErrMsgLoadTuningFailed       = "failed to load tuning: %w"
	ErrMsgCreateDeadLetterDir    = "failed to create dead-letter directory: %w"
	ErrMsgCreatePublisherFailed  = "failed to create resilient publisher: %w"
	ErrMsgUnsupportedStoreDriver = "unsupported store driver %q"
	ErrMsgCreateSQLiteDirFailed  = "failed to create sqlite directory: %w"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgClosingStore               = "Closing store"
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
