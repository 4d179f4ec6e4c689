// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration. Values come from
// built-in defaults, an optional YAML file and the environment, in that
// order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"snapui/internal/ai"
)

// Config holds all application configuration values.
type Config struct {
	App        AppConfig        `koanf:"app"`
	Valkey     ValkeyConfig     `koanf:"valkey"`
	AI         AIConfig         `koanf:"ai"`
	Gemini     ProviderConfig   `koanf:"gemini"`
	OpenAI     ProviderConfig   `koanf:"openai"`
	Claude     ProviderConfig   `koanf:"claude"`
	Mistral    ProviderConfig   `koanf:"mistral"`
	Generation GenerationConfig `koanf:"generation"`
	View       ViewConfig       `koanf:"view"`
}

// AppConfig holds server settings.
type AppConfig struct {
	Host string `koanf:"host"`
	Port string `koanf:"port"`
	Env  string `koanf:"env"` // "development", "production", "testing"
}

// ValkeyConfig locates the optional Valkey server. An empty Host keeps view
// state in process memory.
type ValkeyConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// AIConfig selects the active model provider.
type AIConfig struct {
	Provider string `koanf:"provider"`
}

// ProviderConfig holds credentials for a single model provider.
type ProviderConfig struct {
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`
	BaseURL string `koanf:"base_url"`
}

// GenerationConfig bounds the remote call.
type GenerationConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// ViewConfig controls how long views are kept.
type ViewConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// envSections are the environment prefixes that map onto config sections.
// APP_HOST becomes app.host, GEMINI_API_KEY becomes gemini.api_key.
var envSections = []string{"APP", "VALKEY", "AI", "GEMINI", "OPENAI", "CLAUDE", "MISTRAL", "GENERATION", "VIEW"}

// Default returns the development defaults.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Env:  "development",
		},
		Valkey: ValkeyConfig{
			Port: "6379",
		},
		AI: AIConfig{
			Provider: "gemini",
		},
		Gemini:     ProviderConfig{Model: ai.DefaultGeminiModel},
		Generation: GenerationConfig{Timeout: 20 * time.Second},
		View:       ViewConfig{TTL: 30 * time.Minute},
	}
}

// Load reads configuration from the optional YAML file at path, then
// overlays environment variables. Empty environment values are ignored
// so that an exported-but-blank variable does not wipe a default.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps an environment variable onto a koanf key. Variables outside
// the known sections, and empty values, are skipped.
func envKey(name, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	section, rest, ok := strings.Cut(name, "_")
	if !ok || rest == "" {
		return "", nil
	}
	for _, s := range envSections {
		if section == s {
			return strings.ToLower(section) + "." + strings.ToLower(rest), value
		}
	}
	return "", nil
}

// Validate checks that the configuration can start the server.
func (c *Config) Validate() error {
	var errs []error

	switch c.App.Env {
	case "development", "production", "testing":
	default:
		errs = append(errs, fmt.Errorf("invalid app env %q: must be one of development, production, testing", c.App.Env))
	}

	if !ai.Known(c.AI.Provider) {
		errs = append(errs, fmt.Errorf("invalid ai provider %q: must be one of %s", c.AI.Provider, strings.Join(ai.Names(), ", ")))
	} else if c.Providers()[c.AI.Provider].APIKey == "" {
		errs = append(errs, fmt.Errorf("%s_API_KEY must be set for the active provider", strings.ToUpper(c.AI.Provider)))
	}

	if c.Generation.Timeout <= 0 {
		errs = append(errs, errors.New("generation timeout must be positive"))
	}
	if c.View.TTL <= 0 {
		errs = append(errs, errors.New("view ttl must be positive"))
	}

	return errors.Join(errs...)
}

// Providers returns the per-provider settings keyed by provider name.
func (c *Config) Providers() map[string]ai.ProviderConfig {
	return map[string]ai.ProviderConfig{
		"gemini":  ai.ProviderConfig(c.Gemini),
		"openai":  ai.ProviderConfig(c.OpenAI),
		"claude":  ai.ProviderConfig(c.Claude),
		"mistral": ai.ProviderConfig(c.Mistral),
	}
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.App.Host, c.App.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.App.Env == "development"
}

// ValkeyEnabled reports whether view state should live in Valkey.
func (c *Config) ValkeyEnabled() bool {
	return c.Valkey.Host != ""
}
