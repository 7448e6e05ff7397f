package main

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/config"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/database"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/grading"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/inference"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/inference/openai"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func openDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	return db, nil
}

// newInferenceClient creates an OpenAI client, or an error when no API key
// is configured.
func newInferenceClient(cfg *config.Config) (*openai.Client, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return openai.NewClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		inference.DefaultMaxRetryAttempts,
		time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second,
	), nil
}

// newGrader prefers the model-backed grader and falls back to the heuristic
// one when no API key is configured. The second return value reports whether
// the fallback is in use.
func newGrader(cfg *config.Config) (grading.Grader, func() error, bool) {
	client, err := newInferenceClient(cfg)
	if err != nil {
		return grading.NewHeuristicGrader(), func() error { return nil }, true
	}
	timeout := time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second
	return grading.NewLLMGrader(client, timeout), client.Close, false
}
