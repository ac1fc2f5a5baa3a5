package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves the test into an empty directory so a config.yaml in the
// repository root cannot leak into the run.
func chdir(t *testing.T, dir string) {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(orig))
	})
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LINGOORU_DATABASE_URL", "postgres://localhost:5432/lingooru")
	t.Setenv("LINGOORU_REDIS_ADDR", "localhost:6379")
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	setRequiredEnv(t)
	t.Setenv("LINGOORU_SERVER_LOG_LEVEL", "debug")
	t.Setenv("LINGOORU_REDIS_SESSION_TTL_MINUTES", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "postgres://localhost:5432/lingooru", cfg.Database.URL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 60, cfg.Redis.SessionTTLMinutes)
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 24*60, cfg.Redis.SessionTTLMinutes)
	assert.Equal(t, 20, cfg.Session.LearningBatchSize)
	assert.Equal(t, 20, cfg.Session.ReviewBatchSize)
	assert.Equal(t, 10, cfg.Session.PronunciationBatchSize)
}

func TestLoad_FromConfigFile(t *testing.T) {
	dir := t.TempDir()
	contents := `
server:
  log_level: warn
database:
  url: postgres://db:5432/app
redis:
  addr: redis:6379
session:
  review_batch_size: 15
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0o600))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, "postgres://db:5432/app", cfg.Database.URL)
	assert.Equal(t, 15, cfg.Session.ReviewBatchSize)
	assert.Equal(t, 20, cfg.Session.LearningBatchSize)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LINGOORU_REDIS_ADDR", "localhost:6379")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	chdir(t, t.TempDir())
	setRequiredEnv(t)
	t.Setenv("LINGOORU_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoad_BatchSizeOutOfRange(t *testing.T) {
	chdir(t, t.TempDir())
	setRequiredEnv(t)
	t.Setenv("LINGOORU_SESSION_REVIEW_BATCH_SIZE", "50")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
