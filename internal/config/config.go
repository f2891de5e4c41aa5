// Package config loads process configuration from the environment and the
// optional game tuning file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	Version     string
	APIKey      string // API key for authentication
	// TrustedProxies are the peer addresses whose X-Forwarded-For is honoured
	TrustedProxies []string

	StoreDriver string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	SQLitePath  string

	// Database pool configuration
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	// DBTxTimeout bounds lock waits, statements and pool acquisition per transaction
	DBTxTimeout time.Duration

	CatalogPath          string
	TuningPath           string
	DevMode              bool
	DeadLetterPath       string
	ShutdownTimeout      time.Duration
	LeaderboardCacheSize int
}

// Load loads the server configuration from environment variables
func Load() (*Config, error) {
	return load(true)
}

// LoadForTools loads the configuration for offline tooling, which never
// serves HTTP and so does not need API_KEY.
func LoadForTools() (*Config, error) {
	return load(false)
}

func load(requireAPIKey bool) (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),
		Version:     getEnv(EnvVersion, DefaultVersion),
		APIKey:      getEnv(EnvAPIKey, ""),

		TrustedProxies: splitList(getEnv(EnvTrustedProxies, "")),

		StoreDriver: strings.ToLower(getEnv(EnvStoreDriver, DefaultStoreDriver)),
		DBUser:      getEnv(EnvDBUser, DefaultDBUser),
		DBPassword:  getEnv(EnvDBPassword, DefaultDBPassword),
		DBHost:      getEnv(EnvDBHost, DefaultDBHost),
		DBPort:      getEnv(EnvDBPort, DefaultDBPort),
		DBName:      getEnv(EnvDBName, DefaultDBName),
		SQLitePath:  getEnv(EnvSQLitePath, DefaultSQLitePath),

		DBMaxConns:        getEnvAsInt(EnvDBMaxConns, DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration(EnvDBMaxConnIdle, DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration(EnvDBMaxConnLife, DefaultDBMaxConnLifetime),
		DBTxTimeout:       getEnvAsDuration(EnvDBTxTimeout, DefaultDBTxTimeout),

		CatalogPath:          getEnv(EnvCatalogPath, ""),
		TuningPath:           getEnv(EnvTuningPath, ""),
		DevMode:              getEnvAsBool(EnvDevMode, false),
		DeadLetterPath:       getEnv(EnvDeadLetterPath, DefaultDeadLetterPath),
		ShutdownTimeout:      getEnvAsDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
		LeaderboardCacheSize: getEnvAsInt(EnvLeaderboardCache, 16),
	}

	port, err := strconv.Atoi(getEnv(EnvPort, DefaultPort))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	if requireAPIKey && cfg.APIKey == "" {
		return nil, errors.New(ErrMsgAPIKeyMissing)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverSQLite:
	default:
		return nil, fmt.Errorf(ErrMsgUnknownStoreDriver, cfg.StoreDriver)
	}

	if cfg.DBTxTimeout <= 0 {
		return nil, errors.New(ErrMsgNonPositiveTimeout)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns the integer value of key, or defaultValue when unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration returns the duration value of key, or defaultValue when unset or malformed
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// splitList splits a comma separated value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsProduction reports whether the environment is production
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Environment) {
	case "prod", "production":
		return true
	}
	return false
}
