package config

import (
	"bytes"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// RawConfig mirrors Config with every field optional, so a file only
// overrides what it names.
type RawConfig struct {
	Width   *int    `yaml:"width"`
	Height  *int    `yaml:"height"`
	Title   *string `yaml:"title"`
	AppID   *string `yaml:"app_id"`
	Display *string `yaml:"display"`

	LogLevel    *string `yaml:"log_level"`
	GLESVersion *int    `yaml:"gles_version"`

	Fence *RawFenceConfig `yaml:"fence"`
	Text  *RawTextConfig  `yaml:"text"`
}

type RawFenceConfig struct {
	Timeout  *time.Duration `yaml:"timeout"`
	MaxPolls *int           `yaml:"max_polls"`
}

type RawTextConfig struct {
	Content *string  `yaml:"content"`
	Size    *float64 `yaml:"size"`
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}
