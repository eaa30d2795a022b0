package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/sitedates/internal/atomicfile"
)

type persistedConfig struct {
	Input       *string              `toml:"input,omitempty"`
	Output      *string              `toml:"output,omitempty"`
	Passthrough []string             `toml:"passthrough,omitempty"`
	DateField   *string              `toml:"date_field,omitempty"`
	Ignore      []string             `toml:"ignore,omitempty"`
	UI          *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent *string `toml:"accent,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes the site config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = Default()
	}

	out := persistedConfig{
		Input:     nonEmptyPtr(cfg.Input),
		Output:    nonEmptyPtr(cfg.Output),
		DateField: nonEmptyPtr(cfg.DateField),
	}
	if len(cfg.Passthrough) > 0 {
		out.Passthrough = cfg.Passthrough
	}
	if len(cfg.Ignore) > 0 {
		out.Ignore = cfg.Ignore
	}
	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUISettings{Accent: accent}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
