// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewSlogHandlerWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(newSlogHandler(zerolog.New(&buf)))
	slogger.Info("service started", "service", "trainer")

	output := buf.String()
	if !strings.Contains(output, "service started") {
		t.Errorf("expected message in output: %s", output)
	}
	if !strings.Contains(output, `"service":"trainer"`) {
		t.Errorf("expected attr in output: %s", output)
	}
}

func TestSlogHandler_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{"info", slog.LevelInfo, `"level":"info"`},
		{"warn", slog.LevelWarn, `"level":"warn"`},
		{"error", slog.LevelError, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			h := newSlogHandler(zerolog.New(&buf).Level(zerolog.TraceLevel))
			slog.New(h).Log(context.Background(), tt.level, "msg")
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %s, want to contain %s", buf.String(), tt.want)
			}
		})
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := newSlogHandler(zerolog.New(nil).Level(zerolog.WarnLevel))

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled for a warn-level logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled for a warn-level logger")
	}
}

func TestSlogHandler_GroupsAndAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := newSlogHandler(zerolog.New(&buf))
	slogger := slog.New(h).With("supervisor", "root").WithGroup("event")

	slogger.Info("restart",
		"service", "http",
		"backoff", 2*time.Second,
		"failures", 3,
		"err", errors.New("listener closed"),
		slog.Group("inner", "ok", true),
	)

	output := buf.String()
	for _, want := range []string{
		`"event.supervisor":"root"`,
		`"event.service":"http"`,
		`"event.failures":3`,
		`"event.err":"listener closed"`,
		`"event.inner.ok":true`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestSlogHandler_WithGroupEmpty(t *testing.T) {
	t.Parallel()

	h := newSlogHandler(zerolog.Nop())
	if got := h.WithGroup(""); got != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewSlogLogger(t *testing.T) {
	t.Parallel()

	if NewSlogLogger() == nil {
		t.Fatal("NewSlogLogger() = nil, want non-nil")
	}
}
