package config

import (
	"fmt"
	"strings"
	"time"
)

// FenceConfig tunes the per-frame GPU completion wait.
type FenceConfig struct {
	Timeout  time.Duration `yaml:"timeout"`   // Bound on a single poll.
	MaxPolls int           `yaml:"max_polls"` // 0 = poll until signaled.
}

// TextConfig drives the text scene.
type TextConfig struct {
	Content string  `yaml:"content"`
	Size    float64 `yaml:"size"` // Points at 72 DPI.
}

// Config is the effective configuration after defaults and file values are
// merged.
type Config struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	AppID   string `yaml:"app_id"`
	Display string `yaml:"display"` // Empty = WAYLAND_DISPLAY or wayland-0.

	LogLevel    string `yaml:"log_level"`
	GLESVersion int    `yaml:"gles_version"`

	Fence FenceConfig `yaml:"fence"`
	Text  TextConfig  `yaml:"text"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Width:       640,
		Height:      480,
		Title:       "wlframe",
		AppID:       "wlframe",
		LogLevel:    "info",
		GLESVersion: 2,
		Fence: FenceConfig{
			Timeout:  time.Second,
			MaxPolls: 1,
		},
		Text: TextConfig{
			Content: "Hello",
			Size:    40,
		},
	}
}

// Validate checks the configuration, returning the first problem found as a
// *ValidationError.
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return &ValidationError{Path: "width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Height <= 0 {
		return &ValidationError{Path: "height", Err: fmt.Errorf("height must be > 0")}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, warning, error")}
	}
	if c.GLESVersion != 2 && c.GLESVersion != 3 {
		return &ValidationError{Path: "gles_version", Err: fmt.Errorf("gles_version must be 2 or 3")}
	}
	if c.Fence.Timeout <= 0 {
		return &ValidationError{Path: "fence.timeout", Err: fmt.Errorf("timeout must be > 0")}
	}
	if c.Fence.MaxPolls < 0 {
		return &ValidationError{Path: "fence.max_polls", Err: fmt.Errorf("max_polls must be >= 0")}
	}
	if strings.TrimSpace(c.Text.Content) == "" {
		return &ValidationError{Path: "text.content", Err: fmt.Errorf("content must not be empty")}
	}
	if c.Text.Size <= 0 {
		return &ValidationError{Path: "text.size", Err: fmt.Errorf("size must be > 0")}
	}
	return nil
}
