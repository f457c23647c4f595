package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Release ReleaseConfig `json:"release" toml:"release" yaml:"release"`
	Git     GitConfig     `json:"git" toml:"git" yaml:"git"`
	Archive ArchiveConfig `json:"archive" toml:"archive" yaml:"archive"`
	Clean   CleanConfig   `json:"clean" toml:"clean" yaml:"clean"`
	Log     LogConfig     `json:"log" toml:"log" yaml:"log"`
}

// ReleaseConfig holds the signing identity and push destination.
type ReleaseConfig struct {
	SigningKey       string `json:"signingKey" toml:"signingKey" yaml:"signingKey"`                   // Empty: tool default identity
	PublicRepository string `json:"publicRepository" toml:"publicRepository" yaml:"publicRepository"` // URL or path to push to
}

// GitConfig holds options for invoking the git binary.
type GitConfig struct {
	Binary  string `json:"binary" toml:"binary" yaml:"binary"`    // Default: "git"
	Timeout string `json:"timeout" toml:"timeout" yaml:"timeout"` // Default: "10m", "0" disables
}

// ArchiveConfig holds the export pipeline options.
type ArchiveConfig struct {
	Format     string   `json:"format" toml:"format" yaml:"format"`             // Default: "tar"
	Compressor []string `json:"compressor" toml:"compressor" yaml:"compressor"` // Default: ["bzip2", "-c"]
	Extension  string   `json:"extension" toml:"extension" yaml:"extension"`    // Default: ".tar.bz2"
}

// CleanConfig controls what counts as uncommitted work.
type CleanConfig struct {
	IncludeUntracked bool     `json:"includeUntracked" toml:"includeUntracked" yaml:"includeUntracked"`
	Ignore           []string `json:"ignore" toml:"ignore" yaml:"ignore"` // Glob patterns allowed to be dirty
}

// LogConfig holds logging defaults, overridable from the command line.
type LogConfig struct {
	Level string `json:"level" toml:"level" yaml:"level"`
	JSON  bool   `json:"json" toml:"json" yaml:"json"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Git: GitConfig{
			Binary:  "git",
			Timeout: "10m",
		},
		Archive: ArchiveConfig{
			Format:     "tar",
			Compressor: []string{"bzip2", "-c"},
			Extension:  ".tar.bz2",
		},
		Clean: CleanConfig{
			Ignore: []string{},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// configNames are probed, in order, in the working directory and then in the
// home directory when no explicit path is given.
var configNames = []string{".gitrelease.json", ".gitrelease.toml", ".gitrelease.yaml", ".gitrelease.yml"}

// LoadConfig loads configuration from a file, merging with defaults. The
// decoder is chosen by file extension.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfig()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, goerr.Wrap(err, "failed to read config", goerr.V("path", path))
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config", goerr.V("path", path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid config", goerr.V("path", path))
	}

	return cfg, nil
}

func findConfig() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}
	for _, dir := range dirs {
		for _, name := range configNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

// Validate checks values that would otherwise fail late, halfway through a
// release.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Git.Binary) == "" {
		return fmt.Errorf("git.binary must not be empty")
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if len(c.Archive.Compressor) == 0 || strings.TrimSpace(c.Archive.Compressor[0]) == "" {
		return fmt.Errorf("archive.compressor must name a program")
	}
	for _, pattern := range c.Clean.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("clean.ignore: invalid pattern %q", pattern)
		}
	}
	return nil
}

// TimeoutDuration parses Git.Timeout. Empty or "0" means no bound.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	s := strings.TrimSpace(c.Git.Timeout)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("git.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("git.timeout: negative duration %s", s)
	}
	return d, nil
}

// ArchiveName returns the default archive file name for prefix.
func (c *Config) ArchiveName(prefix string) string {
	return strings.TrimSuffix(prefix, "/") + c.Archive.Extension
}

// SaveConfig saves configuration to a file as JSON.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
