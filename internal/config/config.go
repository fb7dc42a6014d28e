// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles application configuration including reading and writing
// the configuration file and resolving settings from environment overrides.
// The API key is never part of the configuration; it lives in the secret store.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appDirName = "better-naming"

// Defaults used when the config file or a field in it is missing.
const (
	DefaultBaseURL        = "https://api.openai.com/v1"
	DefaultModel          = "text-davinci-003"
	DefaultSuggestions    = 3
	MinSuggestions        = 1
	MaxSuggestions        = 10
	DefaultMaxTokens      = 256
	DefaultTimeoutSeconds = 30
	DefaultSecretBackend  = SecretBackendKeyring
	DefaultServeAddr      = "127.0.0.1:8787"
	DefaultLogLevel       = "info"
)

// Secret backends selectable via secret_backend.
const (
	SecretBackendKeyring = "keyring"
	SecretBackendFile    = "file"
	SecretBackendMemory  = "memory"
)

// Config represents the top-level application configuration
type Config struct {
	// BaseURL is the completion API root, without the /completions suffix
	BaseURL string `yaml:"base_url,omitempty"`

	// Model is the completion model name
	Model string `yaml:"model,omitempty"`

	// Suggestions is the n parameter sent with each request
	Suggestions int `yaml:"suggestions,omitempty"`

	MaxTokens int `yaml:"max_tokens,omitempty"`

	// Temperature is sent only when set; nil leaves the API default
	Temperature *float64 `yaml:"temperature,omitempty"`

	// TimeoutSeconds bounds a single completion round trip
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// SecretBackend selects where the API key is stored: keyring, file or memory
	SecretBackend string `yaml:"secret_backend,omitempty"`

	// SecretsFile overrides the file backend's location; "~/" is expanded
	SecretsFile string `yaml:"secrets_file,omitempty"`

	// ServeAddr is the listen address for `bn serve`
	ServeAddr string `yaml:"serve_addr,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`
}

// Keys lists the settings `bn config set` accepts, in display order.
var Keys = []string{
	"base_url",
	"model",
	"suggestions",
	"max_tokens",
	"temperature",
	"timeout_seconds",
	"secret_backend",
	"secrets_file",
	"serve_addr",
	"log_level",
}

// Default returns a Config with every field set to its default.
func Default() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		Model:          DefaultModel,
		Suggestions:    DefaultSuggestions,
		MaxTokens:      DefaultMaxTokens,
		TimeoutSeconds: DefaultTimeoutSeconds,
		SecretBackend:  DefaultSecretBackend,
		ServeAddr:      DefaultServeAddr,
		LogLevel:       DefaultLogLevel,
	}
}

// ConfigDir returns the application config directory.
// $BN_CONFIG_DIR wins over the OS user config directory.
func ConfigDir() (string, error) {
	if dir := os.Getenv("BN_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, appDirName), nil
}

func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig reads the config file, filling missing fields with defaults.
// A missing file is not an error.
func LoadConfig() (Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.Suggestions == 0 {
		c.Suggestions = d.Suggestions
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = d.MaxTokens
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = d.TimeoutSeconds
	}
	if c.SecretBackend == "" {
		c.SecretBackend = d.SecretBackend
	}
	if c.ServeAddr == "" {
		c.ServeAddr = d.ServeAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Validate checks field ranges and enumerations.
func (c Config) Validate() error {
	if c.Suggestions < MinSuggestions || c.Suggestions > MaxSuggestions {
		return fmt.Errorf("suggestions must be between %d and %d, got %d", MinSuggestions, MaxSuggestions, c.Suggestions)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("temperature must be between 0 and 2, got %g", *c.Temperature)
	}
	if !slices.Contains([]string{SecretBackendKeyring, SecretBackendFile, SecretBackendMemory}, c.SecretBackend) {
		return fmt.Errorf("unknown secret_backend %q", c.SecretBackend)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	err = os.MkdirAll(dir, 0750) // rwxr-x---
	if err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	return nil
}

func SaveConfig(cfg Config) error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}

	err = EnsureConfigDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// Write with permissions rw-r----- (0640)
	err = os.WriteFile(configPath, data, 0640)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return nil
}

// Set assigns a single setting by its YAML key, parsing value as needed.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	next := *c
	switch key {
	case "base_url":
		next.BaseURL = strings.TrimRight(value, "/")
	case "model":
		next.Model = value
	case "suggestions", "max_tokens", "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be a number", key)
		}
		switch key {
		case "suggestions":
			next.Suggestions = n
		case "max_tokens":
			next.MaxTokens = n
		default:
			next.TimeoutSeconds = n
		}
	case "temperature":
		if value == "" {
			next.Temperature = nil
			break
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number")
		}
		next.Temperature = &f
	case "secret_backend":
		next.SecretBackend = value
	case "secrets_file":
		next.SecretsFile = value
	case "serve_addr":
		next.ServeAddr = value
	case "log_level":
		next.LogLevel = strings.ToLower(value)
	default:
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
	}
	next.applyDefaults()
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Get returns a single setting formatted for display.
func (c Config) Get(key string) (string, error) {
	switch key {
	case "base_url":
		return c.BaseURL, nil
	case "model":
		return c.Model, nil
	case "suggestions":
		return strconv.Itoa(c.Suggestions), nil
	case "max_tokens":
		return strconv.Itoa(c.MaxTokens), nil
	case "temperature":
		if c.Temperature == nil {
			return "", nil
		}
		return strconv.FormatFloat(*c.Temperature, 'g', -1, 64), nil
	case "timeout_seconds":
		return strconv.Itoa(c.TimeoutSeconds), nil
	case "secret_backend":
		return c.SecretBackend, nil
	case "secrets_file":
		return c.SecretsFile, nil
	case "serve_addr":
		return c.ServeAddr, nil
	case "log_level":
		return c.LogLevel, nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

// ResolveBaseURL returns the completion API base URL.
// Priority: $BN_BASE_URL env > config value.
func ResolveBaseURL(cfg Config) string {
	if url := os.Getenv("BN_BASE_URL"); url != "" {
		return strings.TrimRight(url, "/")
	}
	return cfg.BaseURL
}

// ResolveModel returns the completion model name.
// Priority: $BN_MODEL env > config value.
func ResolveModel(cfg Config) string {
	if model := os.Getenv("BN_MODEL"); model != "" {
		return model
	}
	return cfg.Model
}

// ResolveSuggestions returns how many completions to request.
// Priority: $BN_SUGGESTIONS env (when within the accepted range) > config value.
func ResolveSuggestions(cfg Config) int {
	if s := os.Getenv("BN_SUGGESTIONS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= MinSuggestions && n <= MaxSuggestions {
			return n
		}
	}
	return cfg.Suggestions
}

// ResolveLogLevel returns the log level name.
// Priority: $BN_LOG_LEVEL env > config value.
func ResolveLogLevel(cfg Config) string {
	if lvl := os.Getenv("BN_LOG_LEVEL"); lvl != "" {
		return strings.ToLower(lvl)
	}
	return cfg.LogLevel
}

// Timeout returns the per-request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResolvePath expands a leading "~/" to the user's home directory.
func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}
