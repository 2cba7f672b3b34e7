package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig overlays raw on the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Width != nil {
		cfg.Width = *raw.Width
	}
	if raw.Height != nil {
		cfg.Height = *raw.Height
	}
	if raw.Title != nil {
		cfg.Title = *raw.Title
	}
	if raw.AppID != nil {
		cfg.AppID = *raw.AppID
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.GLESVersion != nil {
		cfg.GLESVersion = *raw.GLESVersion
	}
	if f := raw.Fence; f != nil {
		if f.Timeout != nil {
			cfg.Fence.Timeout = *f.Timeout
		}
		if f.MaxPolls != nil {
			cfg.Fence.MaxPolls = *f.MaxPolls
		}
	}
	if t := raw.Text; t != nil {
		if t.Content != nil {
			cfg.Text.Content = *t.Content
		}
		if t.Size != nil {
			cfg.Text.Size = *t.Size
		}
	}
	return cfg
}
