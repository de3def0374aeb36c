package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minho-jung/kidlearn/internal/config"
	"github.com/minho-jung/kidlearn/internal/llm"
	"github.com/minho-jung/kidlearn/internal/logger"
	"github.com/minho-jung/kidlearn/internal/prompts"
	"github.com/minho-jung/kidlearn/internal/store"
	"github.com/minho-jung/kidlearn/internal/workflow"
)

// app bundles the collaborators every command needs. They are built once
// per process and shared by all pipeline invocations.
type app struct {
	cfg   config.Config
	log   *logger.Logger
	store *store.Store
	orch  *workflow.Orchestrator
}

func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	s, err := store.Open(cfg.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, log)
	if err != nil {
		s.Close()
		return nil, err
	}
	embedder, err := llm.NewEmbedder(cfg.LLM, log)
	if err != nil {
		s.Close()
		return nil, err
	}

	orch := workflow.New(provider, embedder, prompts.NewRenderer(),
		s.Documents(), s.Sessions(), log, workflow.Options{
			TopK:       cfg.TopK,
			NextLesson: cfg.NextLesson,
		})

	return &app{cfg: cfg, log: log, store: s, orch: orch}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing store", "error", err.Error())
	}
	a.log.Sync()
}
