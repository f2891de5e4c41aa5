package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetenv(key string) error {
	return os.Unsetenv(key)
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	clearEnvVars(t)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	clearEnvVars(t)
	t.Setenv(EnvSchemaVersion, "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	t.Run("postgres needs database settings", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvSchemaVersion, ExpectedEnvSchemaVersion)
		t.Setenv(EnvAPIKey, "key")

		err := ValidateEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required environment variables")
		assert.Contains(t, err.Error(), EnvDBHost)
	})

	t.Run("sqlite only needs the api key", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvSchemaVersion, ExpectedEnvSchemaVersion)
		t.Setenv(EnvStoreDriver, StoreDriverSQLite)
		t.Setenv(EnvAPIKey, "key")

		assert.NoError(t, ValidateEnv())
	})
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	clearEnvVars(t)
	t.Setenv(EnvSchemaVersion, ExpectedEnvSchemaVersion)
	t.Setenv(EnvDBPassword, "change_this_secure_password")
	t.Setenv(EnvAPIKey, "generate_with_openssl_rand_hex_32")
	t.Setenv(EnvDBUser, "user")
	t.Setenv(EnvDBHost, "localhost")
	t.Setenv(EnvDBPort, "5432")
	t.Setenv(EnvDBName, "db")
	t.Setenv(EnvDevMode, "true")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err, "Should not error even with warnings")
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "API_KEY")
	assert.Contains(t, warnings[2], "DEV_MODE")
}
