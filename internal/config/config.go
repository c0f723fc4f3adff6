// Package config loads the daemon configuration from environment variables.
// Every recognized option has a LEDMOJI_-prefixed variable; unset variables
// fall back to defaults. Only the asset directory is required.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variable names recognized by FromEnv.
const (
	EnvBrokerURL      = "LEDMOJI_BROKER_URL"
	EnvClientID       = "LEDMOJI_CLIENT_ID"
	EnvInputTopic     = "LEDMOJI_INPUT_TOPIC"
	EnvOutputTopic    = "LEDMOJI_OUTPUT_TOPIC"
	EnvEmojiDir       = "LEDMOJI_EMOJI_DIR"
	EnvCanvasWidth    = "LEDMOJI_CANVAS_WIDTH"
	EnvCanvasHeight   = "LEDMOJI_CANVAS_HEIGHT"
	EnvOverflow       = "LEDMOJI_OVERFLOW"
	EnvScrollInterval = "LEDMOJI_SCROLL_INTERVAL"
	EnvGlyphSpacing   = "LEDMOJI_GLYPH_SPACING"
	EnvPlaceholder    = "LEDMOJI_PLACEHOLDER"
	EnvReconnectMin   = "LEDMOJI_RECONNECT_MIN"
	EnvReconnectMax   = "LEDMOJI_RECONNECT_MAX"
	EnvConnectTimeout = "LEDMOJI_CONNECT_TIMEOUT"
	EnvPublishTimeout = "LEDMOJI_PUBLISH_TIMEOUT"
	EnvLogLevel       = "LEDMOJI_LOG_LEVEL"
)

// ErrMissingEmojiDir reports that the required asset directory variable is
// unset. The daemon cannot start without it.
var ErrMissingEmojiDir = errors.New("config: " + EnvEmojiDir + " not set")

// Config holds the full daemon configuration.
type Config struct {
	BrokerURL   string
	ClientID    string
	InputTopic  string
	OutputTopic string

	EmojiDir     string
	CanvasWidth  int
	CanvasHeight int
	Overflow     string
	GlyphSpacing int
	Placeholder  string

	ScrollInterval time.Duration
	ReconnectMin   time.Duration
	ReconnectMax   time.Duration
	ConnectTimeout time.Duration
	PublishTimeout time.Duration

	LogLevel string
}

// Default returns the configuration used when no environment is set, except
// for EmojiDir which has no default.
func Default() *Config {
	return &Config{
		BrokerURL:      "tcp://localhost:1883",
		ClientID:       "ledmojid",
		InputTopic:     "ledmoji/render",
		CanvasWidth:    32,
		CanvasHeight:   32,
		Overflow:       "clip",
		GlyphSpacing:   1,
		Placeholder:    "box",
		ScrollInterval: 100 * time.Millisecond,
		ReconnectMin:   time.Second,
		ReconnectMax:   time.Minute,
		ConnectTimeout: 10 * time.Second,
		PublishTimeout: 10 * time.Second,
		LogLevel:       "info",
	}
}

// FromEnv builds a Config from the environment on top of the defaults.
func FromEnv() (*Config, error) {
	cfg := Default()
	var err error

	cfg.BrokerURL = envString(EnvBrokerURL, cfg.BrokerURL)
	cfg.ClientID = envString(EnvClientID, cfg.ClientID)
	cfg.InputTopic = envString(EnvInputTopic, cfg.InputTopic)
	cfg.OutputTopic = envString(EnvOutputTopic, cfg.OutputTopic)
	cfg.EmojiDir = envString(EnvEmojiDir, "")
	cfg.Overflow = envString(EnvOverflow, cfg.Overflow)
	cfg.Placeholder = envString(EnvPlaceholder, cfg.Placeholder)
	cfg.LogLevel = envString(EnvLogLevel, cfg.LogLevel)

	if cfg.CanvasWidth, err = envInt(EnvCanvasWidth, cfg.CanvasWidth); err != nil {
		return nil, err
	}
	if cfg.CanvasHeight, err = envInt(EnvCanvasHeight, cfg.CanvasHeight); err != nil {
		return nil, err
	}
	if cfg.GlyphSpacing, err = envInt(EnvGlyphSpacing, cfg.GlyphSpacing); err != nil {
		return nil, err
	}
	if cfg.ScrollInterval, err = envDuration(EnvScrollInterval, cfg.ScrollInterval); err != nil {
		return nil, err
	}
	if cfg.ReconnectMin, err = envDuration(EnvReconnectMin, cfg.ReconnectMin); err != nil {
		return nil, err
	}
	if cfg.ReconnectMax, err = envDuration(EnvReconnectMax, cfg.ReconnectMax); err != nil {
		return nil, err
	}
	if cfg.ConnectTimeout, err = envDuration(EnvConnectTimeout, cfg.ConnectTimeout); err != nil {
		return nil, err
	}
	if cfg.PublishTimeout, err = envDuration(EnvPublishTimeout, cfg.PublishTimeout); err != nil {
		return nil, err
	}

	// The output topic default carries the canvas size, the convention the
	// display controllers key on.
	if cfg.OutputTopic == "" {
		cfg.OutputTopic = fmt.Sprintf("ledmoji/%dx%d", cfg.CanvasWidth, cfg.CanvasHeight)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the daemon cannot start with.
func (c *Config) Validate() error {
	if c.EmojiDir == "" {
		return ErrMissingEmojiDir
	}
	if c.BrokerURL == "" {
		return errors.New("config: broker URL must not be empty")
	}
	if c.InputTopic == "" || c.OutputTopic == "" {
		return errors.New("config: topics must not be empty")
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("config: canvas size %dx%d is not positive", c.CanvasWidth, c.CanvasHeight)
	}
	if c.GlyphSpacing < 0 {
		return fmt.Errorf("config: glyph spacing %d is negative", c.GlyphSpacing)
	}
	switch c.Overflow {
	case "clip", "wrap", "scroll":
	default:
		return fmt.Errorf("config: overflow must be clip, wrap or scroll, got %q", c.Overflow)
	}
	switch c.Placeholder {
	case "box", "blank":
	default:
		return fmt.Errorf("config: placeholder must be box or blank, got %q", c.Placeholder)
	}
	if c.ScrollInterval <= 0 {
		return fmt.Errorf("config: scroll interval %s is not positive", c.ScrollInterval)
	}
	if c.ReconnectMin <= 0 || c.ReconnectMax < c.ReconnectMin {
		return fmt.Errorf("config: reconnect bounds %s..%s are invalid", c.ReconnectMin, c.ReconnectMax)
	}
	if c.ConnectTimeout <= 0 || c.PublishTimeout <= 0 {
		return errors.New("config: timeouts must be positive")
	}
	return nil
}

// envString returns the environment value for key, or def when unset.
func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// envInt parses an integer environment value, or returns def when unset.
func envInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", key, v, err)
	}
	return n, nil
}

// envDuration parses a duration environment value ("250ms", "1m"), or
// returns def when unset.
func envDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a duration: %w", key, v, err)
	}
	return d, nil
}
