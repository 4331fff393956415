// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error, fatal,
	// panic or disabled. Unknown values fall back to info with a warning.
	Level string

	// Format is json (default) or console.
	Format string

	// Caller adds file:line to every entry.
	Caller bool

	// Timestamp adds an RFC 3339 time field.
	Timestamp bool

	// Service and Version are attached to every entry when set.
	Service string
	Version string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// defaultConfig returns JSON logs at info level on stderr.
func defaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

//nolint:gochecknoinits // logging must work before main calls Init
func init() {
	cfg := defaultConfig()
	// Benchmarks set QUIET_LOGS to keep their output readable.
	if os.Getenv("QUIET_LOGS") == "1" {
		cfg.Level = "fatal"
	}
	log, _ = build(cfg)
}

// Init replaces the global logger. It may be called more than once.
func Init(cfg Config) {
	l, known := build(cfg)

	mu.Lock()
	log = l
	mu.Unlock()

	if !known {
		l.Warn().Str("level", cfg.Level).Msg("unknown log level, using info")
	}
}

// build creates a logger from cfg and sets the global level. known is false
// when cfg.Level could not be parsed.
func build(cfg Config) (l zerolog.Logger, known bool) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	level, known := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = cfg.Output
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	if cfg.Version != "" {
		ctx = ctx.Str("version", cfg.Version)
	}
	return ctx.Logger(), known
}

// parseLevel accepts zerolog level names case-insensitively plus "warning".
// Empty selects info.
func parseLevel(s string) (zerolog.Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return zerolog.InfoLevel, true
	case "warning":
		return zerolog.WarnLevel, true
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel, false
	}
	return level, true
}

// current returns the global logger.
func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// setLogger replaces the global logger, typically in tests.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func setLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// Debug starts a debug entry on the global logger.
func Debug() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Debug()
}

// Info starts an info entry on the global logger.
//
//	logging.Info().Str("addr", addr).Msg("HTTP server service added")
func Info() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Info()
}

// Warn starts a warn entry on the global logger.
func Warn() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Warn()
}

// Error starts an error entry on the global logger.
func Error() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Error()
}

// Fatal starts a fatal entry; os.Exit(1) follows the write.
func Fatal() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Fatal()
}

// newTestLogger writes JSON lines to w without touching the global level.
func newTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
