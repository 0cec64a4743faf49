package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		env  string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Setenv("LOG_LEVEL", tt.env)
		if got := Level(); got != tt.want {
			t.Errorf("Level() with LOG_LEVEL=%q = %v; want %v", tt.env, got, tt.want)
		}
	}
}

// recordingHandler captures records and optionally fails every Handle.
type recordingHandler struct {
	min     slog.Level
	err     error
	records []slog.Record
}

func (h *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min
}

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return h.err
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestMultiHandlerFansOutPastFailures(t *testing.T) {
	sinkErr := errors.New("sink unavailable")
	failing := &recordingHandler{min: slog.LevelInfo, err: sinkErr}
	healthy := &recordingHandler{min: slog.LevelInfo}

	m := NewMultiHandler(failing, healthy)
	record := slog.NewRecord(time.Now(), slog.LevelError, "db write failed", 0)

	err := m.Handle(context.Background(), record)
	if !errors.Is(err, sinkErr) {
		t.Errorf("Handle error = %v; want to carry %v", err, sinkErr)
	}
	if len(healthy.records) != 1 {
		t.Fatalf("healthy sink got %d records; want 1 despite the failing sink", len(healthy.records))
	}
}

func TestMultiHandlerRespectsSinkLevels(t *testing.T) {
	debugSink := &recordingHandler{min: slog.LevelDebug}
	errorSink := &recordingHandler{min: slog.LevelError}
	m := NewMultiHandler(debugSink, errorSink)

	if !m.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("multi handler must be enabled when any sink is")
	}

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "routine", 0)
	if err := m.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(debugSink.records) != 1 {
		t.Errorf("debug sink got %d records; want 1", len(debugSink.records))
	}
	if len(errorSink.records) != 0 {
		t.Errorf("error sink got %d records; want 0 for an info record", len(errorSink.records))
	}
}
