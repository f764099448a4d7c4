// Package config loads runtime configuration from the environment,
// with optional .env file support for local development.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the pipeline needs from the environment.
// A fresh Config is loaded per run; nothing here is shared process state.
type Config struct {
	// OpenAIAPIKey maps to OPENAI_API_KEY. The default works for a local
	// Ollama endpoint, which accepts any key.
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY" default:"ollama"`

	// OpenAIBaseURL maps to OPENAI_BASE_URL. Any OpenAI-compatible
	// endpoint works here.
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"http://localhost:11434/v1"`

	// Model maps to BROCHURE_MODEL.
	Model string `envconfig:"BROCHURE_MODEL" default:"llama3.2"`

	// FetchTimeout maps to FETCH_TIMEOUT. Durations parse directly.
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`

	// FetchMaxAttempts maps to FETCH_MAX_ATTEMPTS.
	FetchMaxAttempts int `envconfig:"FETCH_MAX_ATTEMPTS" default:"3"`

	// ProbeTimeout maps to PROBE_TIMEOUT, used for HEAD reachability checks.
	ProbeTimeout time.Duration `envconfig:"PROBE_TIMEOUT" default:"5s"`

	// ContentBudget maps to CONTENT_BUDGET: the maximum number of
	// characters of aggregated page content fed into generation.
	ContentBudget int `envconfig:"CONTENT_BUDGET" default:"15000"`
}

// Load populates a Config from the environment, reading .env first if one
// is present. A missing .env is not an error: in production the variables
// are injected directly.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Printf("Warning: .env file found but could not be loaded: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.FetchMaxAttempts < 1 {
		return fmt.Errorf("FETCH_MAX_ATTEMPTS must be at least 1, got %d", c.FetchMaxAttempts)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("PROBE_TIMEOUT must be positive, got %s", c.ProbeTimeout)
	}
	if c.ContentBudget <= 0 {
		return fmt.Errorf("CONTENT_BUDGET must be positive, got %d", c.ContentBudget)
	}
	if c.Model == "" {
		return fmt.Errorf("BROCHURE_MODEL must not be empty")
	}
	return nil
}
