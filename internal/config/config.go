// Package config assembles process-wide configuration from the
// environment. All settings use the KIDLEARN_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/minho-jung/kidlearn/internal/llm"
	"github.com/minho-jung/kidlearn/internal/store"
)

// Config is the application configuration.
type Config struct {
	// Addr is the HTTP listen address for the serve command.
	Addr string
	// DBPath is the sqlite database file.
	DBPath string
	// LogMode selects the logger profile: "prod" or "dev".
	LogMode string
	// TopK is the similar-document count used during retrieval.
	TopK int
	// NextLesson toggles follow-up lesson planning after feedback.
	NextLesson bool

	LLM llm.Config
}

// Load builds the configuration from the environment and validates it.
// A validation failure is a startup error and must abort before any
// collaborator is constructed.
func Load() (Config, error) {
	cfg := Config{
		Addr:       ":8080",
		LogMode:    "prod",
		TopK:       5,
		NextLesson: true,
		LLM:        llm.ConfigFromEnv(),
	}

	if addr := os.Getenv("KIDLEARN_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if mode := os.Getenv("KIDLEARN_LOG_MODE"); mode != "" {
		cfg.LogMode = mode
	}
	if raw := os.Getenv("KIDLEARN_TOPK"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil || k <= 0 {
			return Config{}, fmt.Errorf("KIDLEARN_TOPK must be a positive integer, got %q", raw)
		}
		cfg.TopK = k
	}
	if raw := os.Getenv("KIDLEARN_NEXT_LESSON"); raw != "" {
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("KIDLEARN_NEXT_LESSON must be a boolean, got %q", raw)
		}
		cfg.NextLesson = on
	}

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return Config{}, err
	}
	cfg.DBPath = dbPath

	// When no provider was configured explicitly, probe the standard
	// API key variables.
	if cfg.LLM.Validate() != nil && os.Getenv("KIDLEARN_LLM_PROVIDER") == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg.LLM = discovered
		}
	}

	if err := cfg.LLM.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
