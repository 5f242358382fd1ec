package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"bhindi/internal/database"
	"bhindi/internal/llm/client"
	"bhindi/internal/utils"
)

type Config struct {
	DBPath            string `yaml:"db_path"`
	AIProvider        string `yaml:"ai_provider"`
	AIModel           string `yaml:"ai_model"`
	OpenAIBaseURL     string `yaml:"openai_base_url"`
	OpenRouterBaseURL string `yaml:"openrouter_base_url"`
	AnthropicBaseURL  string `yaml:"anthropic_base_url"`
	APIKey            string `yaml:"-"`
	HTTPAddr          string `yaml:"http_addr"`
	KeyringBackend    string `yaml:"keyring_backend"`
	KeyringDir        string `yaml:"keyring_dir"`
	KeyringPassword   string `yaml:"-"`
	LogLevel          string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		DBPath:            database.GetDefaultDBPath(),
		AIProvider:        client.ProviderOpenAI,
		AIModel:           "gpt-3.5-turbo",
		OpenAIBaseURL:     client.DefaultOpenAIBaseURL,
		OpenRouterBaseURL: client.DefaultOpenRouterBaseURL,
		HTTPAddr:          "127.0.0.1:8088",
		LogLevel:          "info",
	}
}

// DefaultPath is ~/.bhindi/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".bhindi", "config.yaml")
	}
	return filepath.Join(home, ".bhindi", "config.yaml")
}

// Load layers defaults, the YAML file at path, the project .env file and
// the process environment, in that order. A missing YAML or .env file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := loadFile(path, &cfg); err != nil {
		return cfg, err
	}

	if err := utils.LoadEnv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("load .env", "err", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}
	set(&cfg.DBPath, "BHINDI_DB_PATH")
	set(&cfg.AIProvider, "BHINDI_AI_PROVIDER")
	set(&cfg.AIModel, "BHINDI_AI_MODEL")
	set(&cfg.OpenAIBaseURL, "BHINDI_OPENAI_BASE_URL")
	set(&cfg.OpenRouterBaseURL, "BHINDI_OPENROUTER_BASE_URL")
	set(&cfg.AnthropicBaseURL, "BHINDI_ANTHROPIC_BASE_URL")
	set(&cfg.APIKey, "BHINDI_API_KEY", "OPENAI_API_KEY")
	set(&cfg.HTTPAddr, "BHINDI_HTTP_ADDR")
	set(&cfg.KeyringBackend, "BHINDI_KEYRING_BACKEND")
	set(&cfg.KeyringDir, "BHINDI_KEYRING_DIR")
	set(&cfg.KeyringPassword, "BHINDI_KEYRING_PASSWORD")
	set(&cfg.LogLevel, "BHINDI_LOG_LEVEL")
}

// Endpoints returns the provider base URLs for the completion registry.
func (c Config) Endpoints() client.Endpoints {
	return client.Endpoints{
		OpenAIBaseURL:     c.OpenAIBaseURL,
		OpenRouterBaseURL: c.OpenRouterBaseURL,
		AnthropicBaseURL:  c.AnthropicBaseURL,
	}
}

// SlogLevel maps LogLevel onto slog; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger at the configured level.
func (c Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.SlogLevel()}))
}
