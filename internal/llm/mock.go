package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockCompletion is a canned response for the MockProvider.
type MockCompletion struct {
	Text  string
	Usage Usage
	Err   error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned completions in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockCompletion
	Calls     []CompletionRequest
}

// NewMockProvider creates a MockProvider with the given canned completions.
func NewMockProvider(responses ...MockCompletion) *MockProvider {
	return &MockProvider{responses: responses}
}

// Complete returns the next canned completion or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Complete(_ context.Context, req CompletionRequest) (*Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Completion{
		Text:       resp.Text,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned completion to the queue.
func (m *MockProvider) AddResponse(resp MockCompletion) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Complete calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockEmbedder is a deterministic Embedder for testing. It derives a
// vector of fixed dimension from the input text so distinct texts get
// distinct (but stable) embeddings.
type MockEmbedder struct {
	dim int

	mu    sync.Mutex
	Calls []string
	Err   error
}

// NewMockEmbedder creates a MockEmbedder producing vectors of dim components.
func NewMockEmbedder(dim int) *MockEmbedder {
	if dim <= 0 {
		dim = 8
	}
	return &MockEmbedder{dim: dim}
}

func (m *MockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, text)
	if m.Err != nil {
		return nil, m.Err
	}

	vec := make([]float32, m.dim)
	for i, r := range text {
		vec[i%m.dim] += float32(r%97) / 97.0
	}
	return vec, nil
}

func (m *MockEmbedder) ModelID() string {
	return fmt.Sprintf("mock-embed-%d", m.dim)
}
