package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"primer/internal/app/server/config"
)

// New returns the logger for env: local is colored text at DEBUG, dev is
// JSON at DEBUG, anything else is JSON at INFO.
func New(env string) *slog.Logger {
	return NewLevel(env, "")
}

// NewLevel is New with an explicit level ("debug", "info", "warn", "error")
// overriding the env default. An empty or unknown level keeps the default.
func NewLevel(env, level string) *slog.Logger {
	var lvl slog.Level
	switch env {
	case config.EnvLocal, config.EnvDev:
		lvl = slog.LevelDebug
	default:
		lvl = slog.LevelInfo
	}
	if l, ok := parseLevel(level); ok {
		lvl = l
	}

	if env == config.EnvLocal {
		return slog.New(NewPrettyHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func setupPrettySlog() *slog.Logger {
	return slog.New(NewPrettyHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}
