package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the full application configuration.
type Config struct {
	OutputDir          string `toml:"output_dir"`
	TargetLang         string `toml:"target_lang"`
	GeminiAPIKey       string `toml:"gemini_api_key"`
	MaxRetries         int    `toml:"max_retries"`
	MaxConcurrent      int    `toml:"max_concurrent"`
	APIRateLimitPerMin int    `toml:"api_rate_limit_per_min"`
}

// Default returns a Config with hardcoded defaults. The rate limit matches
// the one-second spacing the translation API tolerates between calls.
func Default() *Config {
	return &Config{
		OutputDir:          "./downloads",
		TargetLang:         "ko",
		MaxRetries:         2,
		MaxConcurrent:      3,
		APIRateLimitPerMin: 60,
	}
}

// Load reads a TOML config file over the defaults. A missing file is not an
// error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
