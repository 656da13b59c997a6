package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel)
}

// NewLogger builds a text logger at the configured level, tagged with component.
func (c *Config) NewLogger(w io.Writer, component string) *slog.Logger {
	level, _ := c.SlogLevel()
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With("component", component)
}
