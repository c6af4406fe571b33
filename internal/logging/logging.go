// file: internal/logging/logging.go
// version: 1.0.0
// guid: 2a61f0b4-93c2-4d5e-8b7a-0e6c1d9f4b38

// Package logging builds the zap logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a config value to a zap level. "none" disables logging.
func ParseLevel(name string) (zapcore.Level, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "off":
		return zapcore.InfoLevel, false, nil
	case "", "normal":
		return zapcore.InfoLevel, true, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return lvl, false, fmt.Errorf("log level %q: %w", name, err)
	}
	return lvl, true, nil
}

// New returns a console logger writing to w at the given level.
func New(level string, w io.Writer) (*zap.Logger, error) {
	lvl, enabled, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return zap.NewNop(), nil
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(lvl))
	return zap.New(core), nil
}

// Init builds a stderr logger and installs it as the zap global.
func Init(level string) (*zap.Logger, error) {
	log, err := New(level, os.Stderr)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}

// InitFile is Init for full screen surfaces that own the terminal.
// An empty path discards all output.
func InitFile(level, path string) (*zap.Logger, func() error, error) {
	if path == "" {
		zap.ReplaceGlobals(zap.NewNop())
		return zap.NewNop(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log, err := New(level, f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	zap.ReplaceGlobals(log)
	return log, f.Close, nil
}
