package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf, Prefix: "test"})

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Error("messages below the level threshold were logged")
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Error("messages at or above the level threshold were not logged")
	}
}

func TestLogger_Formatting(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf, Prefix: "ledmojid"})

	l.Info("rendered %d units", 4)

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("output %q missing level tag", out)
	}
	if !strings.Contains(out, "ledmojid: rendered 4 units") {
		t.Errorf("output %q missing formatted message", out)
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	l.WithComponent("transport").Info("connected")

	if !strings.Contains(buf.String(), "component=transport") {
		t.Errorf("output %q missing component field", buf.String())
	}
}

func TestLogger_Null(t *testing.T) {
	// Must not panic and must stay silent.
	NullLogger.Error("ignored")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"bogus", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
