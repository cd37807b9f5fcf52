package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.Info("SERVICE", "listed documents", map[string]interface{}{"count": 3})
	l.Error("SERVICE", "upload failed", map[string]interface{}{"error": errors.New("boom")})
	l.Warn("SERVICE", "no details", nil)

	entries := logs.All()
	require.Len(t, entries, 3)

	first := entries[0].ContextMap()
	assert.Equal(t, "SERVICE", first["module"])
	assert.Equal(t, map[string]interface{}{"count": 3}, first["details"])

	second := entries[1].ContextMap()
	assert.Equal(t, "boom", second["error"])

	third := entries[2].ContextMap()
	assert.Equal(t, map[string]interface{}{}, third["details"])
}
