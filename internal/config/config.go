// Package config handles per-site sdate configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// FileName is the site configuration file, looked up in the site root.
	FileName = "sdate.toml"

	// EnvFileName holds optional environment overrides next to FileName.
	EnvFileName = ".env"

	// StateDir is the per-site directory holding the document index.
	StateDir = ".sdate"
)

// Environment variables that override file settings.
const (
	EnvOutput    = "SDATE_OUTPUT"
	EnvDateField = "SDATE_DATE_FIELD"
)

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("invalid config")

// Config represents a site's sdate configuration.
type Config struct {
	// Input is the directory holding markdown documents, relative to the site root.
	Input string `toml:"input"`

	// Output is the build directory, relative to the site root.
	Output string `toml:"output"`

	// Passthrough lists files and directories copied verbatim into Output.
	Passthrough []string `toml:"passthrough"`

	// DateField is the front-matter key holding each document's date.
	DateField string `toml:"date_field"`

	// Ignore lists extra directory names the walker skips.
	Ignore []string `toml:"ignore"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Default returns the configuration used when a site has no sdate.toml.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Input) == "" {
		c.Input = "."
	}
	if strings.TrimSpace(c.Output) == "" {
		c.Output = "_site"
	}
	if strings.TrimSpace(c.DateField) == "" {
		c.DateField = "date"
	}
}

// Load loads the configuration for the site rooted at siteDir.
// Returns a default config if sdate.toml doesn't exist. Values from the
// process environment, then from siteDir/.env, override the file.
func Load(siteDir string) (*Config, error) {
	return LoadWithFile(siteDir, "")
}

// LoadWithFile is Load with an explicit configuration file. An empty
// configPath means siteDir/sdate.toml, which may be absent; an explicit
// path must exist.
func LoadWithFile(siteDir, configPath string) (*Config, error) {
	var cfg *Config
	if strings.TrimSpace(configPath) != "" {
		loaded, err := LoadFrom(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if path := filepath.Join(siteDir, FileName); fileExists(path) {
		loaded, err := LoadFrom(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = Default()
	}

	env, err := readEnvFile(filepath.Join(siteDir, EnvFileName))
	if err != nil {
		return nil, err
	}
	cfg.applyEnv(env)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	meta, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s: unknown key %q", ErrInvalid, path, undecoded[0].String())
	}
	config.applyDefaults()
	return &config, nil
}

func readEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return env, nil
}

// applyEnv applies overrides. The process environment wins over the file.
func (c *Config) applyEnv(file map[string]string) {
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(file[key])
	}

	if v := lookup(EnvOutput); v != "" {
		c.Output = v
	}
	if v := lookup(EnvDateField); v != "" {
		c.DateField = v
	}
}

// Validate checks that paths stay inside the site and the date field is set.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DateField) == "" {
		return fmt.Errorf("%w: date_field must not be empty", ErrInvalid)
	}
	if err := checkRelative("output", c.Output); err != nil {
		return err
	}
	if err := checkRelative("input", c.Input); err != nil {
		return err
	}
	if filepath.Clean(c.Output) == "." {
		return fmt.Errorf("%w: output must not be the site root", ErrInvalid)
	}
	for _, entry := range c.Passthrough {
		if err := checkRelative("passthrough", entry); err != nil {
			return err
		}
	}
	return nil
}

func checkRelative(key, p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("%w: %s entry is empty", ErrInvalid, key)
	}
	if filepath.IsAbs(p) {
		return fmt.Errorf("%w: %s %q must be relative to the site root", ErrInvalid, key, p)
	}
	clean := filepath.ToSlash(filepath.Clean(p))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %s %q escapes the site root", ErrInvalid, key, p)
	}
	return nil
}

// InputDir returns the input directory for siteDir.
func (c *Config) InputDir(siteDir string) string {
	return filepath.Join(siteDir, c.Input)
}

// OutputDir returns the output directory for siteDir.
func (c *Config) OutputDir(siteDir string) string {
	return filepath.Join(siteDir, c.Output)
}

// IgnoredDirs returns the directory names the site walker never enters.
func (c *Config) IgnoredDirs() map[string]struct{} {
	ignored := map[string]struct{}{
		"node_modules": {},
		".git":         {},
		StateDir:       {},
	}
	ignored[filepath.Base(filepath.Clean(c.Output))] = struct{}{}
	for _, name := range c.Ignore {
		if name = strings.TrimSpace(name); name != "" {
			ignored[name] = struct{}{}
		}
	}
	return ignored
}

// CreateDefault creates a default sdate.toml in siteDir if it doesn't exist.
func CreateDefault(siteDir string) (string, error) {
	configPath := filepath.Join(siteDir, FileName)

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil // Already exists
	}

	if err := os.MkdirAll(siteDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create site directory: %w", err)
	}

	defaultConfig := `# sdate site configuration

# Directory holding markdown documents, relative to this file.
input = "."

# Build directory. Also settable with SDATE_OUTPUT.
output = "_site"

# Files and directories copied verbatim into the output directory.
passthrough = ["styles", "images"]

# Front-matter key holding each document's date. Also settable with SDATE_DATE_FIELD.
date_field = "date"

# Extra directory names to skip when walking documents.
# ignore = ["drafts"]

# Optional UI accent color for headers/links in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
