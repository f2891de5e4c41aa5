package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  int
	}{
		{"unset uses default", "", false, 42},
		{"valid integer", "100", true, 100},
		{"negative integer", "-10", true, -10},
		{"zero", "0", true, 0},
		{"not a number", "not-a-number", true, 42},
		{"float", "42.5", true, 42},
		{"empty string", "", true, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT_VAR", tt.value)
			if !tt.set {
				clearKey(t, "TEST_INT_VAR")
			}
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"minutes", "10m", 10 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"compound", "1h30m45s", time.Hour + 30*time.Minute + 45*time.Second},
		{"milliseconds", "500ms", 500 * time.Millisecond},
		{"invalid", "not-a-duration", 5 * time.Minute},
		{"number without unit", "100", 5 * time.Minute},
		{"empty", "", 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute))
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	for value, want := range map[string]bool{"true": true, "1": true, "FALSE": false, "yes": false, "": false} {
		t.Setenv("TEST_BOOL_VAR", value)
		assert.Equal(t, want, getEnvAsBool("TEST_BOOL_VAR", false), "value %q", value)
	}
}

// TestLoad_DatabasePoolConfig tests that database pool configuration is loaded correctly
func TestLoad_DatabasePoolConfig(t *testing.T) {
	t.Run("loads default database pool configuration", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvAPIKey, "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns, "Should use default max connections")
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime, "Should use default idle time")
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime, "Should use default lifetime")
	})

	t.Run("loads custom database pool configuration", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvAPIKey, "test-key")
		t.Setenv(EnvDBMaxConns, "50")
		t.Setenv(EnvDBMaxConnIdle, "10m")
		t.Setenv(EnvDBMaxConnLife, "1h")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 50, cfg.DBMaxConns)
		assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
	})

	t.Run("uses defaults for invalid pool config values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvAPIKey, "test-key")
		t.Setenv(EnvDBMaxConns, "not-a-number")
		t.Setenv(EnvDBMaxConnIdle, "invalid")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultDBMaxConns, cfg.DBMaxConns, "Should fallback to default for invalid max conns")
		assert.Equal(t, DefaultDBMaxConnIdleTime, cfg.DBMaxConnIdleTime, "Should fallback to default for invalid idle time")
	})
}

func clearKey(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, unsetenv(key))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, splitList(" 10.0.0.1, ,10.0.0.2 "))
}
