package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Git.Binary != "git" {
		t.Errorf("Git.Binary = %q, expected git", cfg.Git.Binary)
	}
	if cfg.Git.Timeout != "10m" {
		t.Errorf("Git.Timeout = %q, expected 10m", cfg.Git.Timeout)
	}
	if cfg.Archive.Format != "tar" {
		t.Errorf("Archive.Format = %q, expected tar", cfg.Archive.Format)
	}
	if len(cfg.Archive.Compressor) != 2 || cfg.Archive.Compressor[0] != "bzip2" {
		t.Errorf("Archive.Compressor = %v, expected [bzip2 -c]", cfg.Archive.Compressor)
	}
	if cfg.Release.SigningKey != "" {
		t.Errorf("Release.SigningKey = %q, expected empty", cfg.Release.SigningKey)
	}
	if cfg.Clean.IncludeUntracked {
		t.Errorf("Clean.IncludeUntracked = true, expected false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfig_Formats(t *testing.T) {
	files := map[string]string{
		"release.json": `{
  "release": {"signingKey": "ABCD1234", "publicRepository": "git@example.com:proj.git"},
  "git": {"timeout": "90s"},
  "clean": {"ignore": ["**/*.orig"]}
}`,
		"release.toml": `[release]
signingKey = "ABCD1234"
publicRepository = "git@example.com:proj.git"

[git]
timeout = "90s"

[clean]
ignore = ["**/*.orig"]
`,
		"release.yaml": `release:
  signingKey: ABCD1234
  publicRepository: git@example.com:proj.git
git:
  timeout: 90s
clean:
  ignore:
    - "**/*.orig"
`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			if cfg.Release.SigningKey != "ABCD1234" {
				t.Errorf("SigningKey = %q", cfg.Release.SigningKey)
			}
			if cfg.Release.PublicRepository != "git@example.com:proj.git" {
				t.Errorf("PublicRepository = %q", cfg.Release.PublicRepository)
			}
			d, err := cfg.TimeoutDuration()
			if err != nil || d != 90*time.Second {
				t.Errorf("TimeoutDuration = %v, %v; expected 90s", d, err)
			}
			if len(cfg.Clean.Ignore) != 1 || cfg.Clean.Ignore[0] != "**/*.orig" {
				t.Errorf("Clean.Ignore = %v", cfg.Clean.Ignore)
			}
			// Untouched sections keep their defaults.
			if cfg.Git.Binary != "git" {
				t.Errorf("Git.Binary = %q, expected default git", cfg.Git.Binary)
			}
			if cfg.Archive.Extension != ".tar.bz2" {
				t.Errorf("Archive.Extension = %q, expected default", cfg.Archive.Extension)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Git.Binary != "git" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "Syntax", content: `{"release": `},
		{name: "Timeout", content: `{"git": {"timeout": "soon"}}`},
		{name: "NegativeTimeout", content: `{"git": {"timeout": "-1s"}}`},
		{name: "EmptyBinary", content: `{"git": {"binary": " "}}`},
		{name: "EmptyCompressor", content: `{"archive": {"compressor": []}}`},
		{name: "BadGlob", content: `{"clean": {"ignore": ["[oops"]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestTimeoutDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
	}{
		{input: "", expected: 0},
		{input: "0", expected: 0},
		{input: "30s", expected: 30 * time.Second},
		{input: "10m", expected: 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Git.Timeout = tt.input
			got, err := cfg.TimeoutDuration()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("TimeoutDuration(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestArchiveName(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ArchiveName("proj-1.0/"); got != "proj-1.0.tar.bz2" {
		t.Errorf("ArchiveName = %q", got)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Release.PublicRepository = "/srv/git/proj.git"
	path := filepath.Join(t.TempDir(), "saved.json")

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Release.PublicRepository != "/srv/git/proj.git" {
		t.Errorf("PublicRepository = %q", loaded.Release.PublicRepository)
	}
}
