package config

import (
	"path/filepath"
	"testing"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("KIDLEARN_LLM_PROVIDER", "mock")
	t.Setenv("KIDLEARN_DB", filepath.Join(t.TempDir(), "kidlearn.db"))
	// Keep discovery from picking up keys from the host environment.
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	if cfg.TopK != 5 {
		t.Fatalf("unexpected topK: %d", cfg.TopK)
	}
	if !cfg.NextLesson {
		t.Fatal("next lesson should default on")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("KIDLEARN_ADDR", ":9090")
	t.Setenv("KIDLEARN_TOPK", "3")
	t.Setenv("KIDLEARN_NEXT_LESSON", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.TopK != 3 || cfg.NextLesson {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_BadTopK(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("KIDLEARN_TOPK", "zero")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad topK")
	}
}

func TestLoad_MissingProviderKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("KIDLEARN_LLM_PROVIDER", "openai")
	t.Setenv("KIDLEARN_OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected configuration error without an API key")
	}
}

func TestLoad_DiscoversProvider(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("KIDLEARN_LLM_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.OpenAI.APIKey != "sk-test" {
		t.Fatalf("discovery failed: %+v", cfg.LLM)
	}
}
