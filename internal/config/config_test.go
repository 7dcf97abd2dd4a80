package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL", "INDEPENDENCE_TOLERANCE", "MAX_FREE_VARIABLES", "MIGRATIONS_PATH"} {
		t.Setenv(k, "")
	}

	assert.Equal(t, 8080, ServerPort())
	assert.Equal(t, ":8080", ServerAddr())
	assert.Equal(t, 100.0, RateLimitRPS())
	assert.Equal(t, 20, RateLimitBurst())
	assert.Equal(t, "info", LogLevel())
	assert.Equal(t, 1e-10, IndependenceTolerance())
	assert.Equal(t, 20, MaxFreeVariables())
	assert.Equal(t, "migrations", MigrationsPath())
}

func TestOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("INDEPENDENCE_TOLERANCE", "1e-6")
	t.Setenv("MAX_FREE_VARIABLES", "0")

	assert.Equal(t, ":9000", ServerAddr())
	assert.Equal(t, 2.5, RateLimitRPS())
	assert.Equal(t, 1e-6, IndependenceTolerance())
	assert.Equal(t, 0, MaxFreeVariables())

	t.Setenv("INDEPENDENCE_TOLERANCE", "-1")
	t.Setenv("MAX_FREE_VARIABLES", "many")
	assert.Equal(t, 1e-10, IndependenceTolerance())
	assert.Equal(t, 20, MaxFreeVariables())
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=debug\n"), 0o600))
	require.NoError(t, os.WriteFile(envFile+".secret", []byte("DATABASE_URL=postgres://secret\n"), 0o600))

	t.Setenv("BAYES_ENV", envFile)
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("DATABASE_URL")

	require.NoError(t, Load())
	assert.Equal(t, "debug", LogLevel())
	assert.Equal(t, "postgres://secret", DatabaseURL())
}

func TestNewLogger_Level(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	logger, err := NewLogger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	assert.Equal(t, zap.InfoLevel, parseLevel("verbose"))
	assert.Equal(t, zap.DebugLevel, parseLevel("DEBUG"))
}
