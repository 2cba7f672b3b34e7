package config

import (
	"fmt"
	"strings"
)

// Paths lists every path Explain understands, in display order.
var Paths = []string{
	"width",
	"height",
	"title",
	"app_id",
	"display",
	"log_level",
	"gles_version",
	"fence.timeout",
	"fence.max_polls",
	"text.content",
	"text.size",
}

// Explain returns the effective value at the given YAML path and where it
// came from.
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	switch strings.TrimSpace(path) {
	case "width":
		return cfg.Width, nil
	case "height":
		return cfg.Height, nil
	case "title":
		return cfg.Title, nil
	case "app_id":
		return cfg.AppID, nil
	case "display":
		return cfg.Display, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "gles_version":
		return cfg.GLESVersion, nil
	case "fence.timeout":
		return cfg.Fence.Timeout, nil
	case "fence.max_polls":
		return cfg.Fence.MaxPolls, nil
	case "text.content":
		return cfg.Text.Content, nil
	case "text.size":
		return cfg.Text.Size, nil
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}

// FormatSource renders src for display.
func FormatSource(src Source) string {
	if src.Kind == SourceFile {
		return fmt.Sprintf("%s:%d:%d", src.File, src.Line, src.Column)
	}
	return string(SourceDefault)
}
