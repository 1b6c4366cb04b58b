package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestRedactsSecrets(t *testing.T) {
	l, logs := observed()
	l.Info("login", "email", "ana@example.com", "Password", "hunter2", "access_token", "abc")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "ana@example.com", fields["email"])
	assert.Equal(t, "[redacted]", fields["Password"])
	assert.Equal(t, "[redacted]", fields["access_token"])
}

func TestWithCarriesFields(t *testing.T) {
	l, logs := observed()
	l.With("component", "importer", "token", "t").Warn("slow")

	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "importer", entry.ContextMap()["component"])
	assert.Equal(t, "[redacted]", entry.ContextMap()["token"])
}

func TestNilAndNopAreSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Info("ignored")
		l.Sync()
		Nop().Error("ignored", "k", "v")
	})
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"production", "development", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l)
	}
}
