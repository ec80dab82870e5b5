// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/AnirudhGatech/IECS-UI/internal/search"
	"github.com/AnirudhGatech/IECS-UI/internal/util"
)

// CurrentVersion is the config file format version.
const CurrentVersion = "1"

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Config is the complete gtsearch configuration.
type Config struct {
	Version string `toml:"version" json:"version" yaml:"version"`

	Search  SearchConfig  `toml:"search" json:"search" yaml:"search"`
	UI      UIConfig      `toml:"ui" json:"ui" yaml:"ui"`
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
	Export  ExportConfig  `toml:"export" json:"export" yaml:"export"`
}

// SearchConfig configures the backend connection.
type SearchConfig struct {
	Endpoint string `toml:"endpoint" json:"endpoint" yaml:"endpoint"`

	// TimeoutSecs bounds each request. Zero disables the timeout.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs" yaml:"timeout_secs"`
}

// Timeout returns TimeoutSecs as a duration.
func (s SearchConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	Theme          string `toml:"theme" json:"theme" yaml:"theme"` // auto, dark, light
	Title          string `toml:"title" json:"title" yaml:"title"`
	AssistantName  string `toml:"assistant_name" json:"assistant_name" yaml:"assistant_name"`
	Hyperlinks     bool   `toml:"hyperlinks" json:"hyperlinks" yaml:"hyperlinks"`
	ShowDisclaimer bool   `toml:"show_disclaimer" json:"show_disclaimer" yaml:"show_disclaimer"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	// File receives JSON logs. Empty means ~/.gtsearch/gtsearch.log.
	File  string `toml:"file" json:"file" yaml:"file"`
	Level string `toml:"level" json:"level" yaml:"level"` // debug, info, warn, error
}

// ExportConfig configures transcript export.
type ExportConfig struct {
	// Dir receives exported transcripts. Empty means ~/.gtsearch/exports.
	Dir    string `toml:"dir" json:"dir" yaml:"dir"`
	Format string `toml:"format" json:"format" yaml:"format"` // markdown, html, json
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a configuration with all default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Search: SearchConfig{
			Endpoint: search.DefaultEndpoint,
		},
		UI: UIConfig{
			Theme:          "auto",
			Title:          "GTSearch",
			AssistantName:  "GTSearch",
			Hyperlinks:     true,
			ShowDisclaimer: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Export: ExportConfig{
			Format: "markdown",
		},
	}
}

// SetDefaults fills empty string fields with their defaults.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Search.Endpoint == "" {
		c.Search.Endpoint = d.Search.Endpoint
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.Title == "" {
		c.UI.Title = d.UI.Title
	}
	if c.UI.AssistantName == "" {
		c.UI.AssistantName = d.UI.AssistantName
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Export.Format == "" {
		c.Export.Format = d.Export.Format
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Export.Format = strings.ToLower(c.Export.Format)
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the gtsearch configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".gtsearch"), nil
}

func configPath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) { return configPath("config.toml") }

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) { return configPath("config.json") }

// ConfigPathYAML returns the path to the YAML config file.
func ConfigPathYAML() (string, error) { return configPath("config.yaml") }

// LogFilePath returns the configured log file, or the default location.
func (c *Config) LogFilePath() (string, error) {
	if c.Logging.File != "" {
		return expandHome(c.Logging.File)
	}
	return configPath("gtsearch.log")
}

// ExportDir returns the configured export directory, or the default one.
func (c *Config) ExportDir() (string, error) {
	if c.Export.Dir != "" {
		return expandHome(c.Export.Dir)
	}
	return configPath("exports")
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the first config file found in ConfigDir, applies environment
// overrides and validates the result. With no config file the defaults are
// used. It returns the path that was loaded, or "" for defaults.
func Load() (*Config, string, error) {
	finders := []func() (string, error){ConfigPathTOML, ConfigPathJSON, ConfigPathYAML}
	for _, find := range finders {
		path, err := find()
		if err != nil {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err != nil {
			return nil, path, err
		}
		return cfg, path, nil
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, "", err
	}
	return cfg, "", nil
}

// LoadFromPath loads configuration from a specific file. The format is
// chosen by extension; anything that is not .json, .yaml or .yml is TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = LoadYAML(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) finish() error {
	if err := c.ApplyEnvOverrides(); err != nil {
		return err
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadYAML decodes a YAML file into cfg.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes cfg to path with owner-only permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# gtsearch configuration file\n")
	buf.WriteString("# Environment variables prefixed GTSEARCH_ override these values.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validThemes  = []string{"auto", "dark", "light"}
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"markdown", "html", "json"}
)

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Validate checks the configuration and returns ValidateErrors listing
// every problem found.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.Search.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "search.endpoint",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.Search.Endpoint),
		})
	}
	if c.Search.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "search.timeout_secs",
			Message: "must not be negative",
		})
	}
	if !oneOf(c.UI.Theme, validThemes) {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: %s", c.UI.Theme, strings.Join(validThemes, ", ")),
		})
	}
	if !oneOf(c.Logging.Level, validLevels) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: %s", c.Logging.Level, strings.Join(validLevels, ", ")),
		})
	}
	if !oneOf(c.Export.Format, validFormats) {
		errs = append(errs, ValidationError{
			Field:   "export.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: %s", c.Export.Format, strings.Join(validFormats, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies GTSEARCH_* environment variables to the config.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv("GTSEARCH_ENDPOINT"); v != "" {
		c.Search.Endpoint = v
	}
	if v := os.Getenv("GTSEARCH_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GTSEARCH_TIMEOUT: %w", err)
		}
		c.Search.TimeoutSecs = secs
	}
	if v := os.Getenv("GTSEARCH_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("GTSEARCH_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("GTSEARCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("GTSEARCH_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	return nil
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a value by its dotted TOML key, e.g. "ui.theme".
func (c *Config) Get(key string) (any, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a value given as a string to a dotted TOML key.
func (c *Config) Set(key, value string) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: expected a boolean: %w", key, err)
		}
		field.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: expected an integer: %w", key, err)
		}
		field.SetInt(int64(n))
	default:
		return fmt.Errorf("%s: unsupported type %s", key, field.Kind())
	}
	return nil
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	v := reflect.ValueOf(c).Elem()
	for _, part := range strings.Split(key, ".") {
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("unknown config key: %s", key)
		}
		next, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown config key: %s", key)
		}
		v = next
	}
	if v.Kind() == reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%s is a section, not a key", key)
	}
	return v, nil
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Keys returns every dotted key in the configuration.
func Keys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := prefix + f.Tag.Get("toml")
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, name+".")
				continue
			}
			keys = append(keys, name)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

// String returns the config as indented JSON for display.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
