// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func setConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BN_CONFIG_DIR", dir)
	return dir
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	c := qt.New(t)
	setConfigDir(t)

	cfg, err := LoadConfig()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.DeepEquals, Default())
}

func TestLoadConfigFillsMissingFields(t *testing.T) {
	c := qt.New(t)
	dir := setConfigDir(t)
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("model: gpt-3.5-turbo-instruct\nsuggestions: 5\n"), 0640)
	c.Assert(err, qt.IsNil)

	cfg, err := LoadConfig()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Model, qt.Equals, "gpt-3.5-turbo-instruct")
	c.Assert(cfg.Suggestions, qt.Equals, 5)
	c.Assert(cfg.BaseURL, qt.Equals, DefaultBaseURL)
	c.Assert(cfg.SecretBackend, qt.Equals, SecretBackendKeyring)
	c.Assert(cfg.Timeout(), qt.Equals, 30*time.Second)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	c := qt.New(t)
	dir := setConfigDir(t)
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("secret_backend: vault\n"), 0640)
	c.Assert(err, qt.IsNil)

	_, err = LoadConfig()
	c.Assert(err, qt.ErrorMatches, `invalid config file .*: unknown secret_backend "vault"`)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	c := qt.New(t)
	dir := setConfigDir(t)
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("model: [unterminated\n"), 0640)
	c.Assert(err, qt.IsNil)

	_, err = LoadConfig()
	c.Assert(err, qt.ErrorMatches, `failed to parse config file .*`)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	c := qt.New(t)
	setConfigDir(t)

	cfg := Default()
	c.Assert(cfg.Set("model", "davinci-002"), qt.IsNil)
	c.Assert(cfg.Set("temperature", "0.7"), qt.IsNil)
	c.Assert(SaveConfig(cfg), qt.IsNil)

	loaded, err := LoadConfig()
	c.Assert(err, qt.IsNil)
	c.Assert(loaded, qt.DeepEquals, cfg)
}

func TestSetValidates(t *testing.T) {
	c := qt.New(t)
	cfg := Default()

	c.Assert(cfg.Set("suggestions", "abc"), qt.ErrorMatches, "suggestions must be a number")
	c.Assert(cfg.Set("suggestions", "42"), qt.ErrorMatches, "suggestions must be between 1 and 10, got 42")
	c.Assert(cfg.Set("colour", "blue"), qt.ErrorMatches, `unknown config key "colour".*`)

	c.Assert(cfg.Set("base_url", "http://localhost:8080/v1/"), qt.IsNil)
	c.Assert(cfg.BaseURL, qt.Equals, "http://localhost:8080/v1")

	got, err := cfg.Get("base_url")
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "http://localhost:8080/v1")
}

func TestResolveEnvOverrides(t *testing.T) {
	c := qt.New(t)
	cfg := Default()

	c.Assert(ResolveModel(cfg), qt.Equals, DefaultModel)
	c.Assert(ResolveSuggestions(cfg), qt.Equals, DefaultSuggestions)

	t.Setenv("BN_MODEL", "local-model")
	t.Setenv("BN_BASE_URL", "http://127.0.0.1:1234/v1/")
	t.Setenv("BN_SUGGESTIONS", "5")
	t.Setenv("BN_LOG_LEVEL", "DEBUG")

	c.Assert(ResolveModel(cfg), qt.Equals, "local-model")
	c.Assert(ResolveBaseURL(cfg), qt.Equals, "http://127.0.0.1:1234/v1")
	c.Assert(ResolveSuggestions(cfg), qt.Equals, 5)
	c.Assert(ResolveLogLevel(cfg), qt.Equals, "debug")

	t.Setenv("BN_SUGGESTIONS", "-2")
	c.Assert(ResolveSuggestions(cfg), qt.Equals, DefaultSuggestions)

	t.Setenv("BN_SUGGESTIONS", "500")
	c.Assert(ResolveSuggestions(cfg), qt.Equals, DefaultSuggestions)
}

func TestSetRejectsNonPositiveMaxTokens(t *testing.T) {
	c := qt.New(t)
	cfg := Default()

	c.Assert(cfg.Set("max_tokens", "-5"), qt.ErrorMatches, "max_tokens must be positive, got -5")
	c.Assert(cfg.MaxTokens, qt.Equals, DefaultMaxTokens)
}

func TestTemperatureZeroIsKept(t *testing.T) {
	c := qt.New(t)
	setConfigDir(t)

	cfg := Default()
	c.Assert(cfg.Temperature, qt.IsNil)
	got, err := cfg.Get("temperature")
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "")

	c.Assert(cfg.Set("temperature", "0"), qt.IsNil)
	c.Assert(cfg.Temperature, qt.Not(qt.IsNil))
	c.Assert(*cfg.Temperature, qt.Equals, 0.0)
	c.Assert(SaveConfig(cfg), qt.IsNil)

	loaded, err := LoadConfig()
	c.Assert(err, qt.IsNil)
	c.Assert(loaded.Temperature, qt.Not(qt.IsNil))
	c.Assert(*loaded.Temperature, qt.Equals, 0.0)

	c.Assert(cfg.Set("temperature", "3"), qt.ErrorMatches, "temperature must be between 0 and 2, got 3")
	c.Assert(cfg.Set("temperature", ""), qt.IsNil)
	c.Assert(cfg.Temperature, qt.IsNil)
}

func TestResolvePath(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ResolvePath("~/keys/secrets.yaml")
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, filepath.Join(home, "keys", "secrets.yaml"))

	got, err = ResolvePath("/etc/bn/secrets.yaml")
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "/etc/bn/secrets.yaml")
}
