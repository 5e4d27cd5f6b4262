// Package logging builds the zap logger shared by the dashboard, the CLI and
// the gateway. The dashboard owns the terminal, so output normally goes to a
// size-rotated file instead of stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"smartdir/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/lumberjack.v2"
)

// Category names a subsystem; each gets a named child logger.
type Category string

const (
	CategoryBoot      Category = "boot"      // Startup and config
	CategoryAPI       Category = "api"       // REST client calls
	CategoryDashboard Category = "dashboard" // Terminal UI events
	CategoryGateway   Category = "gateway"   // /api gateway requests
	CategoryCLI       Category = "cli"       // Non-interactive subcommands
)

// New returns a logger configured from cfg. With neither a file nor console
// output configured it returns a no-op logger.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var sinks []zapcore.WriteSyncer
	if cfg.File != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  true,
		}))
	}
	if cfg.Console {
		sinks = append(sinks, zapcore.Lock(os.Stderr))
	}
	if len(sinks) == 0 {
		return zap.NewNop(), nil
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), zapcore.NewMultiWriteSyncer(sinks...), level)
	return zap.New(core, zap.AddCaller()), nil
}

// NewWriter returns a logger that writes to w; used by tests and by callers
// that manage their own sink.
func NewWriter(w io.Writer, format string, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(newEncoder(format), zapcore.AddSync(w), level)
	return zap.New(core)
}

// For returns the child logger for a category.
func For(l *zap.Logger, c Category) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return l.Named(string(c))
}

// ParseLevel maps debug/info/warn/error to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

func newEncoder(format string) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if strings.EqualFold(format, "console") || strings.EqualFold(format, "text") {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg)
	}
	return zapcore.NewJSONEncoder(encCfg)
}
