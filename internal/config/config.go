// Package config loads runtime settings from an optional YAML file and the environment.
// Environment variables win over the file, and the file wins over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

type Config struct {
	Provider    string  `yaml:"provider" env:"WHITEBOARD_PROVIDER"`
	Temperature float64 `yaml:"temperature" env:"WHITEBOARD_TEMPERATURE"`
	ImageModel  string  `yaml:"image_model" env:"WHITEBOARD_IMAGE_MODEL"`
	StaticDir   string  `yaml:"static_dir" env:"WHITEBOARD_STATIC_DIR"`
	Port        string  `yaml:"port" env:"PORT"`
	LogLevel    string  `yaml:"log_level" env:"WHITEBOARD_LOG_LEVEL"`

	GeminiAPIKey string `yaml:"-" env:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"gemini_model" env:"GEMINI_MODEL"`

	OpenAIAPIKey  string `yaml:"-" env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `yaml:"openai_base_url" env:"OPENAI_BASE_URL"`
	OpenAIModel   string `yaml:"openai_model" env:"OPENAI_MODEL"`

	OllamaURL   string `yaml:"ollama_url" env:"OLLAMA_URL"`
	OllamaModel string `yaml:"ollama_model" env:"OLLAMA_MODEL"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Provider:    ProviderGemini,
		Temperature: 0.3,
		ImageModel:  "gemini-2.0-flash-preview-image-generation",
		StaticDir:   "./static",
		Port:        "8888",
		LogLevel:    "info",
		GeminiModel: "gemini-2.0-flash",
		OpenAIModel: "gpt-4o",
		OllamaModel: "mistral-small3.2:24b",
	}
}

// Load builds the configuration. path may be empty, in which case no file is read.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		slog.Debug("Loaded config file", "path", path)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("unsupported provider: %s", c.Provider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", c.Temperature)
	}
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	return nil
}

// DefaultModel returns the configured model for provider.
func (c *Config) DefaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return c.GeminiModel
	case ProviderOpenAI:
		return c.OpenAIModel
	case ProviderOllama:
		return c.OllamaModel
	default:
		return ""
	}
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
