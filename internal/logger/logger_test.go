package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	require.NoError(t, Init("production"))
	assert.False(t, zap.L().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init("development"))
	assert.True(t, zap.L().Core().Enabled(zapcore.DebugLevel))
}
