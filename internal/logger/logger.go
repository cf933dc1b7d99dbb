package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Setup installs the process logger. format is "text" or "json".
func Setup(w io.Writer, level, format string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format %q: want text or json", format)
	}
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
	return nil
}

func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

func Get() *slog.Logger {
	if defaultLogger == nil {
		_ = Setup(os.Stdout, "info", "text")
	}
	return defaultLogger
}

func With(args ...any) *slog.Logger {
	return Get().With(args...)
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func DebugContext(ctx context.Context, msg string, args ...any) {
	Get().DebugContext(ctx, msg, args...)
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func InfoContext(ctx context.Context, msg string, args ...any) {
	Get().InfoContext(ctx, msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	Get().ErrorContext(ctx, msg, args...)
}
