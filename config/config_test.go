package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/docmark/format"
	"github.com/tsawler/docmark/parser"
	"github.com/tsawler/docmark/resolver"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"milliseconds", "250ms", 250 * time.Millisecond, false},
		{"complex", "1m30s", 90 * time.Second, false},
		{"invalid", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	result, err := Duration{2 * time.Second}.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "2s" {
		t.Errorf("MarshalText() = %v, want 2s", string(result))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.LogLevel != "info" {
		t.Errorf("General.LogLevel = %v, want info", cfg.General.LogLevel)
	}
	if cfg.Render.Format != "html" {
		t.Errorf("Render.Format = %v, want html", cfg.Render.Format)
	}
	if cfg.Render.MaxDepth != parser.MaxDepth {
		t.Errorf("Render.MaxDepth = %v, want %v", cfg.Render.MaxDepth, parser.MaxDepth)
	}
	if cfg.Starlark.MaxSteps != resolver.DefaultMaxSteps {
		t.Errorf("Starlark.MaxSteps = %v, want %v", cfg.Starlark.MaxSteps, resolver.DefaultMaxSteps)
	}
	if cfg.Vars == nil {
		t.Error("Vars should be an empty map")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[general]
log_level = "debug"

[render]
format = "text"
max_depth = 32
html_fragment = true

[vars]
project = "docmark"
version = "1.0"

[starlark]
max_steps = 500
timeout = "2s"
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if level, _ := cfg.Level(); level != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", level)
	}
	if cfg.Format() != format.Text {
		t.Errorf("Format() = %v, want Text", cfg.Format())
	}
	if cfg.Render.MaxDepth != 32 || !cfg.Render.HTMLFragment {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Vars["project"] != "docmark" || cfg.Vars["version"] != "1.0" {
		t.Errorf("Vars = %v", cfg.Vars)
	}
	if cfg.Starlark.MaxSteps != 500 || cfg.Starlark.Timeout.Duration != 2*time.Second {
		t.Errorf("Starlark = %+v", cfg.Starlark)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "[render\n", "failed to parse config"},
		{"unknown key", "[render]\ncolour = true\n", "unknown config keys: render.colour"},
		{"bad duration", "[starlark]\ntimeout = \"later\"\n", "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if err == nil {
				t.Fatal("Parse() expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"log level", func(c *Config) { c.General.LogLevel = "loud" }, "general.log_level"},
		{"format", func(c *Config) { c.Render.Format = "pdf" }, "render.format"},
		{"max depth", func(c *Config) { c.Render.MaxDepth = -1 }, "render.max_depth"},
		{"timeout", func(c *Config) { c.Starlark.Timeout.Duration = -time.Second }, "starlark.timeout"},
		{"var name", func(c *Config) { c.Vars["1x"] = "v" }, "vars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/docmark.toml")
	if err == nil {
		t.Error("Load() expected error for non-existent file")
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "docmark.toml")

	t.Setenv("DOCMARK_TEST_LOG", filepath.Join(tmpDir, "docmark.log"))
	configContent := `
[general]
log_file = "$DOCMARK_TEST_LOG"

[render]
format = "ansi"

[starlark]
module = "helpers.star"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogFile != filepath.Join(tmpDir, "docmark.log") {
		t.Errorf("General.LogFile = %v", cfg.General.LogFile)
	}
	if cfg.Starlark.Module != filepath.Join(tmpDir, "helpers.star") {
		t.Errorf("Starlark.Module = %v, want it next to the config file", cfg.Starlark.Module)
	}
	if cfg.Format() != format.ANSI {
		t.Errorf("Format() = %v, want ANSI", cfg.Format())
	}
	if cfg.Render.MaxDepth != parser.MaxDepth {
		t.Errorf("Render.MaxDepth = %v, want default", cfg.Render.MaxDepth)
	}
}

func TestFind(t *testing.T) {
	t.Setenv(EnvVar, "/etc/docmark/custom.toml")
	if got := Find(); got != "/etc/docmark/custom.toml" {
		t.Errorf("Find() = %q", got)
	}
}

func TestParseYAML(t *testing.T) {
	cfg, err := ParseYAML(`
general:
  log_level: warn
render:
  format: source
vars:
  project: docmark
starlark:
  timeout: 500ms
`)
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}

	if level, _ := cfg.Level(); level != slog.LevelWarn {
		t.Errorf("Level() = %v, want warn", level)
	}
	if cfg.Format() != format.Source {
		t.Errorf("Format() = %v, want Source", cfg.Format())
	}
	if cfg.Vars["project"] != "docmark" {
		t.Errorf("Vars = %v", cfg.Vars)
	}
	if cfg.Starlark.Timeout.Duration != 500*time.Millisecond {
		t.Errorf("Starlark.Timeout = %v", cfg.Starlark.Timeout.Duration)
	}
	if cfg.Render.MaxDepth != parser.MaxDepth {
		t.Errorf("Render.MaxDepth = %v, want default", cfg.Render.MaxDepth)
	}
}

func TestParseYAML_Errors(t *testing.T) {
	if _, err := ParseYAML("render:\n  colour: true\n"); err == nil {
		t.Error("expected unknown keys to be rejected")
	}
	if cfg, err := ParseYAML(""); err != nil || cfg.Render.Format != "html" {
		t.Errorf("empty YAML should give defaults, got %+v, %v", cfg, err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docmark.yml")
	if err := os.WriteFile(path, []byte("render:\n  format: text\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Format() != format.Text {
		t.Errorf("Format() = %v, want Text", cfg.Format())
	}
}
