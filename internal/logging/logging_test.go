// file: internal/logging/logging_test.go
// version: 1.0.0
// guid: 5c0e2d8a-71f4-4b39-a6d2-3e8f9b1c7a04

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		enabled bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"INFO", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"", zapcore.InfoLevel, true},
		{"none", zapcore.InfoLevel, false},
	}
	for _, tt := range tests {
		lvl, enabled, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, lvl, tt.in)
		assert.Equal(t, tt.enabled, enabled, tt.in)
	}

	_, _, err := ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("warn", &buf)
	require.NoError(t, err)

	log.Info("quiet")
	log.Warn("loud", zap.String("session", "abc"))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, "abc")
}

func TestNew_Disabled(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("none", &buf)
	require.NoError(t, err)
	log.Error("nothing")
	assert.Empty(t, buf.String())
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.log")
	log, closeFn, err := InitFile("debug", path)
	require.NoError(t, err)
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	log.Debug("written")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")
}
