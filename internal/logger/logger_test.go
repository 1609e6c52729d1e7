package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer:      &buf,
		Environment: "production",
		Level:       slog.LevelInfo,
	})

	log.Info("leaderboard cycle complete", "users", 3)

	out := buf.String()
	if !strings.Contains(out, `"msg":"leaderboard cycle complete"`) {
		t.Errorf("expected JSON output, got %q", out)
	}
	if !strings.Contains(out, `"users":3`) {
		t.Errorf("expected users attribute, got %q", out)
	}
}

func TestNew_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer:      &buf,
		Environment: "development",
		Level:       slog.LevelDebug,
	})

	log.Debug("store opened", "path", "/tmp/db")

	out := buf.String()
	if !strings.Contains(out, "store opened") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "path=/tmp/db") {
		t.Errorf("expected attribute in output, got %q", out)
	}
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer: &buf,
		Format: "pretty",
		Level:  slog.LevelWarn,
	})

	log.Info("should be dropped")
	log.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Errorf("info message should have been filtered, got %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("warn message missing, got %q", out)
	}
}
