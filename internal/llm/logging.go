package llm

import (
	"context"
	"time"

	"github.com/minho-jung/kidlearn/internal/logger"
)

// LoggingProvider is a decorator that logs every completion request.
type LoggingProvider struct {
	inner Provider
	log   *logger.Logger
}

// WithLogging wraps a Provider with structured request logging.
func WithLogging(p Provider, log *logger.Logger) Provider {
	return &LoggingProvider{inner: p, log: log.With("component", "llm")}
}

func (l *LoggingProvider) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Complete(ctx, req)

	fields := []interface{}{
		"purpose", purpose,
		"model", l.inner.ModelID(),
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if resp != nil {
		fields = append(fields,
			"input_tokens", resp.Usage.InputTokens,
			"output_tokens", resp.Usage.OutputTokens,
			"stop_reason", resp.StopReason,
		)
	}

	if err != nil {
		l.log.Error("completion failed", append(fields, "error", err.Error())...)
	} else {
		l.log.Info("completion", fields...)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// LoggingEmbedder is a decorator that logs every embedding request.
type LoggingEmbedder struct {
	inner Embedder
	log   *logger.Logger
}

// WithEmbedLogging wraps an Embedder with structured request logging.
func WithEmbedLogging(e Embedder, log *logger.Logger) Embedder {
	return &LoggingEmbedder{inner: e, log: log.With("component", "embed")}
}

func (l *LoggingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	vec, err := l.inner.Embed(ctx, text)

	fields := []interface{}{
		"purpose", purpose,
		"model", l.inner.ModelID(),
		"latency_ms", time.Since(start).Milliseconds(),
		"text_len", len(text),
	}
	if err != nil {
		l.log.Error("embedding failed", append(fields, "error", err.Error())...)
	} else {
		l.log.Debug("embedding", append(fields, "dim", len(vec))...)
	}

	return vec, err
}

func (l *LoggingEmbedder) ModelID() string {
	return l.inner.ModelID()
}
