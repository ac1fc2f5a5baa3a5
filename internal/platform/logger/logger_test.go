package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		log, err := Setup(level)
		require.NoError(t, err, "level %s", level)
		require.NotNil(t, log)
	}
}

func TestSetup_InvalidLevelFallsBack(t *testing.T) {
	log, err := Setup("verbose")
	require.NoError(t, err)
	require.NotNil(t, log)

	// Falls back to info: debug is suppressed, info passes.
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
}

func TestSetup_SetsDefault(t *testing.T) {
	log, err := Setup("error")
	require.NoError(t, err)
	assert.Equal(t, log, slog.Default())
}

func TestContextRoundTrip(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithLogger(context.Background(), base)

	assert.Equal(t, base, FromContext(ctx))
	assert.Equal(t, base, FromContextOrDefault(ctx, slog.Default()))
}

func TestFromContext_Missing(t *testing.T) {
	ctx := context.Background()

	assert.NotNil(t, FromContext(ctx))

	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Equal(t, fallback, FromContextOrDefault(ctx, fallback))
}
