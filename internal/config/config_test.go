package config

import (
	"errors"
	"testing"
	"time"
)

// setRequired sets the one variable without a default.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv(EnvEmojiDir, t.TempDir())
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}

	if cfg.BrokerURL != "tcp://localhost:1883" {
		t.Errorf("BrokerURL = %q, want default", cfg.BrokerURL)
	}
	if cfg.CanvasWidth != 32 || cfg.CanvasHeight != 32 {
		t.Errorf("canvas = %dx%d, want 32x32", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.Overflow != "clip" {
		t.Errorf("Overflow = %q, want clip", cfg.Overflow)
	}
	if cfg.OutputTopic != "ledmoji/32x32" {
		t.Errorf("OutputTopic = %q, want size-derived default", cfg.OutputTopic)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvBrokerURL, "tcp://broker.local:1883")
	t.Setenv(EnvCanvasWidth, "64")
	t.Setenv(EnvCanvasHeight, "16")
	t.Setenv(EnvOverflow, "scroll")
	t.Setenv(EnvScrollInterval, "250ms")
	t.Setenv(EnvOutputTopic, "display/frame")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}

	if cfg.BrokerURL != "tcp://broker.local:1883" {
		t.Errorf("BrokerURL = %q", cfg.BrokerURL)
	}
	if cfg.CanvasWidth != 64 || cfg.CanvasHeight != 16 {
		t.Errorf("canvas = %dx%d, want 64x16", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.Overflow != "scroll" {
		t.Errorf("Overflow = %q, want scroll", cfg.Overflow)
	}
	if cfg.ScrollInterval != 250*time.Millisecond {
		t.Errorf("ScrollInterval = %s, want 250ms", cfg.ScrollInterval)
	}
	if cfg.OutputTopic != "display/frame" {
		t.Errorf("OutputTopic = %q, want explicit override", cfg.OutputTopic)
	}
}

func TestFromEnv_MissingEmojiDir(t *testing.T) {
	t.Setenv(EnvEmojiDir, "")
	if _, err := FromEnv(); !errors.Is(err, ErrMissingEmojiDir) {
		t.Errorf("FromEnv() error = %v, want ErrMissingEmojiDir", err)
	}
}

func TestFromEnv_BadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-integer width", EnvCanvasWidth, "wide"},
		{"non-duration interval", EnvScrollInterval, "fast"},
		{"unknown overflow", EnvOverflow, "bounce"},
		{"unknown placeholder", EnvPlaceholder, "question-mark"},
		{"zero width", EnvCanvasWidth, "0"},
		{"negative spacing", EnvGlyphSpacing, "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)
			if _, err := FromEnv(); err == nil {
				t.Errorf("FromEnv() with %s=%q expected error", tt.key, tt.value)
			}
		})
	}
}

func TestValidate_ReconnectBounds(t *testing.T) {
	cfg := Default()
	cfg.EmojiDir = t.TempDir()
	cfg.ReconnectMin = time.Minute
	cfg.ReconnectMax = time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for min > max")
	}
}
