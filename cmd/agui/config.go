package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

type config struct {
	logLevel     slog.Level
	logFormat    string
	geminiKey    string
	anthropicKey string
}

// resolveConfig reads configuration through getenv. Env vars are only read
// in main; tests pass a map lookup.
func resolveConfig(getenv func(string) string) (config, error) {
	cfg := config{
		logLevel:     slog.LevelInfo,
		logFormat:    "text",
		geminiKey:    getenv("GEMINI_API_KEY"),
		anthropicKey: getenv("ANTHROPIC_API_KEY"),
	}
	if v := getenv("AGUI_LOG_LEVEL"); v != "" {
		if err := cfg.logLevel.UnmarshalText([]byte(v)); err != nil {
			return config{}, fmt.Errorf("AGUI_LOG_LEVEL: %w", err)
		}
	}
	if v := strings.ToLower(getenv("AGUI_LOG_FORMAT")); v != "" {
		switch v {
		case "text", "json":
			cfg.logFormat = v
		default:
			return config{}, fmt.Errorf("AGUI_LOG_FORMAT: unknown format %q: must be \"text\" or \"json\"", v)
		}
	}
	return cfg, nil
}

// newLogger builds the process logger: colored console output for text,
// slog's JSON handler for json.
func newLogger(w io.Writer, cfg config) *slog.Logger {
	if cfg.logFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.logLevel}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      cfg.logLevel,
		TimeFormat: time.Kitchen,
	}))
}
