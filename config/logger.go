package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/urfave/cli/v2"
)

// Logger holds logger configuration.
type Logger struct {
	Level string
	JSON  bool
	Color bool
}

// Flags returns CLI flags for logger configuration.
func (c *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &c.Level,
			EnvVars:     []string{"GITRELEASE_LOG_LEVEL"},
		},
		&cli.BoolFlag{
			Name:        "log-json",
			Usage:       "Output logs in JSON format",
			Destination: &c.JSON,
			EnvVars:     []string{"GITRELEASE_LOG_JSON"},
		},
	}
}

// Configure builds a logger writing to w.
func (c *Logger) Configure(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	if c.JSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithColor(c.Color),
		)
	}

	return slog.New(handler), nil
}

// ParseLevel maps a level name to a slog level, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
}
