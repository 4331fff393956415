// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

func TestWatermillAdapter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	adapter := newWatermillAdapter(zerolog.New(&buf).Level(zerolog.TraceLevel))

	adapter.Info("subscribed", watermill.LogFields{"topic": "interactions"})
	adapter.Error("handler failed", errors.New("bad payload"), watermill.LogFields{"message_uuid": "m-1"})

	output := buf.String()
	for _, want := range []string{
		`"topic":"interactions"`,
		`"message":"subscribed"`,
		`"error":"bad payload"`,
		`"message_uuid":"m-1"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestWatermillAdapter_With(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	adapter := newWatermillAdapter(zerolog.New(&buf).Level(zerolog.TraceLevel))

	child := adapter.With(watermill.LogFields{"subscriber": "recorder"})
	child.Info("ack", nil)
	child.Error("nack", errors.New("retry"), watermill.LogFields{"n": 1})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %s", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, `"subscriber":"recorder"`) {
			t.Errorf("line missing inherited field: %s", line)
		}
	}
}
