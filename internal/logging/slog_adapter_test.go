// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

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

// Debug is omitted: the package init sets the global level to info.
func TestSlogHandler_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelInfo, `"level":"info"`},
		{slog.LevelWarn, `"level":"warn"`},
		{slog.LevelError, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewSlogLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))
			logger.Log(context.Background(), tt.level, "event")
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %s, want %s", buf.String(), tt.want)
			}
		})
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled on warn logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled on warn logger")
	}
}

func TestSlogHandler_Attrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSlogLogger(zerolog.New(&buf)).With("supervisor", "atelier")
	logger.Info("service restarted",
		"service", "catalog-refresh",
		"failures", 3,
		"backoff", 15*time.Second,
		"healthy", false,
		"error", errors.New("timeout"),
	)

	out := buf.String()
	for _, want := range []string{
		`"supervisor":"atelier"`,
		`"service":"catalog-refresh"`,
		`"failures":3`,
		`"healthy":false`,
		`"error":"timeout"`,
		`"message":"service restarted"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandler_Groups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSlogLogger(zerolog.New(&buf)).WithGroup("tree").WithGroup("child")
	logger.Info("event", "name", "api", slog.Group("spec", slog.Int("threshold", 5)))

	out := buf.String()
	if !strings.Contains(out, `"tree.child.name":"api"`) {
		t.Errorf("nested group prefix missing: %s", out)
	}
	if !strings.Contains(out, `"tree.child.spec.threshold":5`) {
		t.Errorf("group attr prefix missing: %s", out)
	}
}

func TestSlogHandler_EmptyGroupIsNoop(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.Nop())
	if h.WithGroup("") != slog.Handler(h) {
		t.Error("WithGroup(\"\") returned a new handler")
	}
}
