package logger_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dateTracker/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	require.NoError(t, logger.Init(false, logger.WithFile(path, 1, 1)))
	t.Cleanup(func() { logger.Logger = zap.NewNop() })

	logger.Info("Service: started", zap.String("component", "test"))
	logger.Error("Service: failed", errors.New("boom"))
	logger.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"Service: started"`)
	assert.Contains(t, string(content), `"component":"test"`)
	assert.Contains(t, string(content), `"error":"boom"`)
}

func TestInit_Development(t *testing.T) {
	require.NoError(t, logger.Init(true))
	t.Cleanup(func() { logger.Logger = zap.NewNop() })

	assert.True(t, logger.Logger.Core().Enabled(zap.DebugLevel))
}
