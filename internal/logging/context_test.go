// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateCorrelationID(t *testing.T) {
	t.Parallel()

	id1 := GenerateCorrelationID()
	id2 := GenerateCorrelationID()

	if len(id1) != 8 {
		t.Errorf("expected 8-character correlation ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique correlation IDs")
	}
}

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	id := GenerateRequestID()
	if len(id) != 36 { // UUID format
		t.Errorf("expected 36-character request ID, got %d", len(id))
	}
}

func TestContextIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if id := CorrelationIDFromContext(ctx); id != "" {
		t.Errorf("expected empty correlation ID, got %s", id)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		t.Errorf("expected empty request ID, got %s", id)
	}

	ctx = ContextWithCorrelationID(ctx, "abc12345")
	ctx = ContextWithRequestID(ctx, "req-1")

	if id := CorrelationIDFromContext(ctx); id != "abc12345" {
		t.Errorf("CorrelationIDFromContext() = %q, want abc12345", id)
	}
	if id := RequestIDFromContext(ctx); id != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want req-1", id)
	}

	ctx = ContextWithNewCorrelationID(context.Background())
	if id := CorrelationIDFromContext(ctx); len(id) != 8 {
		t.Errorf("generated correlation ID length = %d, want 8", len(id))
	}
}

func TestCtx_AddsContextFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), newTestLogger(&buf))
	ctx = ContextWithCorrelationID(ctx, "corr0001")
	ctx = ContextWithRequestID(ctx, "req-42")

	Ctx(ctx).Info().Msg("matched")

	output := buf.String()
	if !strings.Contains(output, `"correlation_id":"corr0001"`) {
		t.Errorf("expected correlation_id in output: %s", output)
	}
	if !strings.Contains(output, `"request_id":"req-42"`) {
		t.Errorf("expected request_id in output: %s", output)
	}
}

func TestCtx_NoFieldsWhenAbsent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), newTestLogger(&buf))

	logger := CtxWith(ctx).Str("user_id", "u1").Logger()
	logger.Info().Msg("plain")

	output := buf.String()
	if strings.Contains(output, "correlation_id") || strings.Contains(output, "request_id") {
		t.Errorf("unexpected context fields in output: %s", output)
	}
	if !strings.Contains(output, `"user_id":"u1"`) {
		t.Errorf("expected user_id in output: %s", output)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	original := current()
	defer setLogger(original)
	setLogger(newTestLogger(&buf))

	logger := WithComponent("ranking")
	logger.Info().Msg("diversified")

	if !strings.Contains(buf.String(), `"component":"ranking"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}
