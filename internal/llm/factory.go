package llm

import (
	"context"
	"fmt"

	"github.com/minho-jung/kidlearn/internal/logger"
)

// NewProvider creates a generative Provider from configuration, wrapped
// with request logging. Provider failures are not retried here: a failed
// call fails the pipeline invocation that made it.
func NewProvider(ctx context.Context, cfg Config, log *logger.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, log), nil
}

// NewEmbedder creates an Embedder from configuration. Embeddings are
// always served by OpenAI: the similarity collection was built with
// OpenAI vectors and mixing embedding spaces would corrupt retrieval.
func NewEmbedder(cfg Config, log *logger.Logger) (Embedder, error) {
	if cfg.Provider == "mock" {
		return NewMockEmbedder(8), nil
	}

	base, err := NewOpenAIEmbedder(cfg.OpenAI)
	if err != nil {
		return nil, fmt.Errorf("initializing embedder: %w", err)
	}

	return WithEmbedLogging(base, log), nil
}
