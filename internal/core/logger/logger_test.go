package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestInit verifies logger initialization for different environments.
func TestInit(t *testing.T) {
	t.Run("Development", func(t *testing.T) {
		err := Init("development", "debug")
		require.NoError(t, err)
		assert.NotNil(t, globalLogger)
		assert.True(t, globalLogger.Core().Enabled(zap.DebugLevel))
	})

	t.Run("Production", func(t *testing.T) {
		err := Init("production", "info")
		require.NoError(t, err)
		assert.False(t, globalLogger.Core().Enabled(zap.DebugLevel))
		assert.True(t, globalLogger.Core().Enabled(zap.InfoLevel))
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		err := Init("production", "invalid_level")
		require.NoError(t, err)
		assert.True(t, globalLogger.Core().Enabled(zap.InfoLevel))
	})
}

// TestGet verifies the no-op fallback before Init.
func TestGet(t *testing.T) {
	globalLogger = nil
	assert.NotNil(t, Get())

	require.NoError(t, Init("development", "info"))
	assert.Same(t, globalLogger, Get())
}

// TestForStore verifies the store id field is attached.
func TestForStore(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	globalLogger = zap.New(core)
	defer func() { globalLogger = nil }()

	ForStore("1011").Info("quote computed")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "1011", logs.All()[0].ContextMap()["store_id"])
}

// TestSync verifies that Sync does not panic even if logger is nil.
func TestSync(t *testing.T) {
	globalLogger = nil
	Sync()

	require.NoError(t, Init("development", "info"))
	Sync()
}
