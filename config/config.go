// Package config loads docmark settings from TOML or YAML files.
package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/docmark/format"
	"github.com/tsawler/docmark/parser"
	"github.com/tsawler/docmark/resolver"
)

// EnvVar names the environment variable consulted by Find
const EnvVar = "DOCMARK_CONFIG"

// Config holds the complete configuration
type Config struct {
	General  GeneralConfig     `toml:"general" yaml:"general"`
	Render   RenderConfig      `toml:"render" yaml:"render"`
	Vars     map[string]string `toml:"vars" yaml:"vars"`
	Starlark StarlarkConfig    `toml:"starlark" yaml:"starlark"`
}

// GeneralConfig holds logging settings
type GeneralConfig struct {
	LogLevel string `toml:"log_level" yaml:"log_level"`
	LogFile  string `toml:"log_file" yaml:"log_file"`
}

// RenderConfig holds output settings
type RenderConfig struct {
	Format       string `toml:"format" yaml:"format"`
	MaxDepth     int    `toml:"max_depth" yaml:"max_depth"`
	HTMLFragment bool   `toml:"html_fragment" yaml:"html_fragment"`
	HTMLLang     string `toml:"html_lang" yaml:"html_lang"`
	LinkBase     string `toml:"link_base" yaml:"link_base"`
}

// StarlarkConfig holds settings for the Starlark evaluator
type StarlarkConfig struct {
	// Module is the path of a .star file. When set, placeholders are
	// evaluated by Starlark instead of the [vars] table.
	Module   string   `toml:"module" yaml:"module"`
	MaxSteps uint64   `toml:"max_steps" yaml:"max_steps"`
	Timeout  Duration `toml:"timeout" yaml:"timeout"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file, or a YAML file when the
// extension is .yaml or .yml. A relative Starlark module path is taken
// relative to the directory of the file.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = ParseYAML(string(data))
	default:
		cfg, err = Parse(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if m := cfg.Starlark.Module; m != "" && !filepath.IsAbs(m) {
		cfg.Starlark.Module = filepath.Join(filepath.Dir(path), m)
	}

	return cfg, nil
}

// Parse decodes configuration from TOML text
func Parse(data string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return &cfg, nil
}

// ParseYAML decodes configuration from YAML text. Unknown keys are
// rejected as in Parse.
func ParseYAML(data string) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewBufferString(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return &cfg, nil
}

// Find returns the path named by DOCMARK_CONFIG, or the first existing
// default location, or "" if there is none.
func Find() string {
	if path := os.Getenv(EnvVar); path != "" {
		return path
	}

	defaultPaths := []string{"./docmark.toml", "./docmark.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		defaultPaths = append(defaultPaths, filepath.Join(home, ".config", "docmark", "config.toml"))
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	sort.Strings(keys)
	return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}

	if c.Render.Format == "" {
		c.Render.Format = "html"
	}
	if c.Render.MaxDepth == 0 {
		c.Render.MaxDepth = parser.MaxDepth
	}

	if c.Vars == nil {
		c.Vars = map[string]string{}
	}

	if c.Starlark.MaxSteps == 0 {
		c.Starlark.MaxSteps = resolver.DefaultMaxSteps
	}
}

// expandEnvVars expands environment variables in path fields
func (c *Config) expandEnvVars() {
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.Starlark.Module = os.ExpandEnv(c.Starlark.Module)
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := format.Parse(c.Render.Format); err != nil {
		return fmt.Errorf("render.format: %w", err)
	}
	if c.Render.MaxDepth < 1 {
		return fmt.Errorf("render.max_depth must be positive, got %d", c.Render.MaxDepth)
	}
	if c.Starlark.Timeout.Duration < 0 {
		return fmt.Errorf("starlark.timeout must not be negative, got %s", c.Starlark.Timeout.Duration)
	}
	for name := range c.Vars {
		if !validName(name) {
			return fmt.Errorf("vars: %q is not a valid placeholder name", name)
		}
	}
	return nil
}

// Level returns the configured log level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.General.LogLevel)); err != nil {
		return 0, fmt.Errorf("general.log_level: %w", err)
	}
	return level, nil
}

// Format returns the configured output format
func (c *Config) Format() format.Format {
	f, _ := format.Parse(c.Render.Format)
	return f
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
