package llm

import "context"

// Provider is the core abstraction for generative text completion.
// Consumers build a prompt (usually via the prompts package) and receive
// plain generated text.
type Provider interface {
	// Complete sends a system role and user prompt to the model and
	// returns the generated text.
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Embedder converts text into a fixed-dimension embedding vector.
// The dimension is decided by the embedding model and must stay consistent
// for every vector that ends up in the same similarity collection.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)

	// ModelID returns the embedding model identifier.
	ModelID() string
}

// CompletionRequest describes what to send to the model.
type CompletionRequest struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Prompt is the user message. Generation here is single-turn.
	Prompt string

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Completion holds the model's output.
type Completion struct {
	// Text is the generated output, trimmed of surrounding whitespace.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
