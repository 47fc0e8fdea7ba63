package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	CSVPath            string `yaml:"csv_path"`
	ReviewColumn       string `yaml:"review_column"`
	MaxReviews         int    `yaml:"max_reviews"`
	OutputPath         string `yaml:"output_path"`
	GeminiAPIKey       string `yaml:"gemini_api_key"`
	HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds"`
}

// apiKeyPlaceholder is deliberately not rejected at load time: an unset key
// surfaces as an authentication error from the endpoint, which the model
// fallback loop reports like any other per-model failure.
const apiKeyPlaceholder = "YOUR_API_KEY_HERE"

func LoadConfig() (Config, error) {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", configPath, err)
		}
		slog.Info("config loaded", "path", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.CSVPath, "CSV_PATH")
	envOverride(&cfg.ReviewColumn, "REVIEW_COLUMN")
	envOverride(&cfg.OutputPath, "OUTPUT_PATH")
	envOverride(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	if err := envOverrideInt(&cfg.MaxReviews, "MAX_REVIEWS"); err != nil {
		return Config{}, err
	}
	if err := envOverrideInt(&cfg.HTTPTimeoutSeconds, "HTTP_TIMEOUT_SECONDS"); err != nil {
		return Config{}, err
	}

	// Defaults
	if cfg.CSVPath == "" {
		cfg.CSVPath = "recensioni.csv"
	}
	if cfg.ReviewColumn == "" {
		cfg.ReviewColumn = "body"
	}
	if cfg.MaxReviews == 0 {
		cfg.MaxReviews = 50
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "analisi_risultati.json"
	}
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = apiKeyPlaceholder
	}
	if cfg.HTTPTimeoutSeconds == 0 {
		cfg.HTTPTimeoutSeconds = 120
	}

	if cfg.MaxReviews < 1 {
		return Config{}, fmt.Errorf("invalid max_reviews %d: must be >= 1", cfg.MaxReviews)
	}
	if cfg.HTTPTimeoutSeconds < 1 {
		return Config{}, fmt.Errorf("invalid http_timeout_seconds %d: must be >= 1", cfg.HTTPTimeoutSeconds)
	}

	return cfg, nil
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) error {
	val := os.Getenv(envKey)
	if val == "" {
		return nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", envKey, val, err)
	}
	*field = parsed
	return nil
}
