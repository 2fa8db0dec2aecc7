package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.log")

	log := NewZapLogger()
	log.SetDestination(contracts.FileLog, path)
	log.Info("capture started", log.Field().String("source", "Audio 1"), log.Field().Int64("position", 4800))
	log.Debug("hidden at info level")
	log.SetLevel(contracts.DebugLevel)
	log.Debug("visible at debug level", log.Field().Error("error", errors.New("boom")))
	require.NoError(t, log.(*ZapLogger).logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"capture started"`)
	assert.Contains(t, out, `"source":"Audio 1"`)
	assert.Contains(t, out, `"position":4800`)
	assert.NotContains(t, out, "hidden at info level")
	assert.Contains(t, out, "visible at debug level")
}

func TestNopLoggerDiscards(t *testing.T) {
	log := NewNopLogger()
	assert.NotPanics(t, func() {
		log.Warn("dropped", log.Field().Bool("ok", true))
		log.SetLevel(contracts.ErrorLevel)
	})
}
