package config

import "time"

// Environment variable names
const (
	EnvPort             = "PORT"
	EnvAPIKey           = "API_KEY"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
	EnvEnvironment      = "ENVIRONMENT"
	EnvVersion          = "VERSION"
	EnvStoreDriver      = "STORE_DRIVER"
	EnvDBUser           = "DB_USER"
	EnvDBPassword       = "DB_PASSWORD"
	EnvDBHost           = "DB_HOST"
	EnvDBPort           = "DB_PORT"
	EnvDBName           = "DB_NAME"
	EnvDBMaxConns       = "DB_MAX_CONNS"
	EnvDBMaxConnIdle    = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLife    = "DB_MAX_CONN_LIFETIME"
	EnvDBTxTimeout      = "DB_TX_TIMEOUT"
	EnvSQLitePath       = "SQLITE_PATH"
	EnvCatalogPath      = "CATALOG_PATH"
	EnvTuningPath       = "TUNING_PATH"
	EnvDevMode          = "DEV_MODE"
	EnvDeadLetterPath   = "EVENT_DEAD_LETTER_PATH"
	EnvSchemaVersion    = "ENV_SCHEMA_VERSION"
	EnvShutdownTimeout  = "SHUTDOWN_TIMEOUT"
	EnvLeaderboardCache = "LEADERBOARD_CACHE_SIZE"
	EnvTrustedProxies   = "TRUSTED_PROXIES"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// Defaults
const (
	DefaultPort              = "8080"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultEnvironment       = "dev"
	DefaultVersion           = "dev"
	DefaultStoreDriver       = StoreDriverPostgres
	DefaultDBUser            = "postgres"
	DefaultDBPassword        = "postgres"
	DefaultDBHost            = "localhost"
	DefaultDBPort            = "5432"
	DefaultDBName            = "phonesbot"
	DefaultSQLitePath        = "data/phonesbot.db"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultDBTxTimeout       = 5 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultDeadLetterPath    = "logs/event_deadletter.jsonl"
)

// Error messages
const (
	ErrMsgInvalidPort        = "invalid PORT value: %w"
	ErrMsgAPIKeyMissing      = "API_KEY environment variable must be set for security"
	ErrMsgUnknownStoreDriver = "unknown STORE_DRIVER %q (want postgres or sqlite)"
	ErrMsgNonPositiveTimeout = "DB_TX_TIMEOUT must be positive"
	ErrMsgOpenTuningFailed   = "failed to open tuning file: %w"
	ErrMsgDecodeTuningFailed = "failed to decode tuning file: %w"
	ErrMsgInvalidTuning      = "invalid tuning"
)

// Log messages
const (
	LogMsgTuningFileMissing = "Tuning file not found, using defaults"
)
