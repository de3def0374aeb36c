// Package workflow sequences the learning-session pipelines: initial
// lesson, assessment feedback, and overall feedback. Each pipeline is a
// straight-line stage sequence over a per-request State; stages skip
// themselves when their inputs are missing and the pipeline fails with
// ErrTerminalMissing if no stage produced the terminal response.
package workflow

import (
	"context"
	"fmt"

	"github.com/minho-jung/kidlearn/internal/llm"
	"github.com/minho-jung/kidlearn/internal/logger"
	"github.com/minho-jung/kidlearn/internal/prompts"
	"github.com/minho-jung/kidlearn/internal/store"
)

const (
	defaultTopK      = 5
	defaultMaxTokens = 1024
)

// DocumentStore is the similarity-store contract the pipelines depend on.
type DocumentStore interface {
	Upsert(ctx context.Context, id, collection, text string, embedding []float32, meta map[string]any) error
	QueryNearest(ctx context.Context, collection string, query []float32, k int) ([]store.ScoredDocument, error)
	LatestByFilter(ctx context.Context, collection string, filter map[string]any) (*store.Document, error)
}

// SessionStore is the session-store contract the pipelines depend on.
type SessionStore interface {
	Save(ctx context.Context, s *store.LessonSession) error
	Get(ctx context.Context, childID, lessonID string) (*store.LessonSession, error)
	AttachFeedback(ctx context.Context, childID, lessonID, feedback, nextLesson string) error
	HistoryByChild(ctx context.Context, childID string) ([]store.LessonSession, error)
}

// Options tune pipeline behavior.
type Options struct {
	// TopK is the number of similar documents fetched during retrieval.
	TopK int
	// NextLesson enables the follow-up lesson plan after feedback.
	NextLesson bool
	// MaxTokens caps each completion.
	MaxTokens int
}

// Orchestrator holds the shared collaborators and runs the pipelines.
// Collaborators are constructed once at process start and shared across
// concurrent invocations; all per-request state lives in State.
type Orchestrator struct {
	provider llm.Provider
	embedder llm.Embedder
	renderer *prompts.Renderer
	docs     DocumentStore
	sessions SessionStore
	log      *logger.Logger
	opts     Options
}

// New builds an Orchestrator.
func New(provider llm.Provider, embedder llm.Embedder, renderer *prompts.Renderer, docs DocumentStore, sessions SessionStore, log *logger.Logger, opts Options) *Orchestrator {
	if opts.TopK <= 0 {
		opts.TopK = defaultTopK
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	return &Orchestrator{
		provider: provider,
		embedder: embedder,
		renderer: renderer,
		docs:     docs,
		sessions: sessions,
		log:      log.With("component", "workflow"),
		opts:     opts,
	}
}

type stage func(ctx context.Context, st *State) error

func (o *Orchestrator) run(ctx context.Context, st *State, stages ...stage) error {
	for _, s := range stages {
		if err := s(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// InitProfile runs the initial-lesson pipeline: curriculum generation,
// similar-document retrieval, then lesson and quiz generation.
func (o *Orchestrator) InitProfile(ctx context.Context, profile ChildProfile) (*LearningResponse, error) {
	st := &State{}
	if profile.ChildID != "" {
		st.Profile = &profile
	}

	err := o.run(ctx, st, o.curriculumStage, o.retrievalStage, o.generationStage)
	if err != nil {
		return nil, err
	}
	if st.LearningResponse == nil {
		return nil, &ErrTerminalMissing{Pipeline: "initial_lesson"}
	}

	o.log.Info("initial lesson generated",
		"child_id", profile.ChildID,
		"lesson_id", st.LessonID,
		"related_docs", len(st.RelatedDocs),
	)
	return st.LearningResponse, nil
}

// SubmitAssessment runs the assessment-feedback pipeline: store the
// submission, generate feedback, and (when enabled) plan the next lesson.
func (o *Orchestrator) SubmitAssessment(ctx context.Context, sub AssessmentSubmission) (*FeedbackResponse, error) {
	st := &State{}
	if sub.ChildID != "" && sub.LessonID != "" {
		st.Assessment = &sub
	}

	err := o.run(ctx, st, o.submissionStage, o.feedbackStage, o.nextLessonStage)
	if err != nil {
		return nil, err
	}
	if st.FeedbackResponse == nil {
		return nil, &ErrTerminalMissing{Pipeline: "assessment_feedback"}
	}

	o.log.Info("assessment feedback generated",
		"child_id", sub.ChildID,
		"lesson_id", sub.LessonID,
		"next_lesson", st.NextLesson != "",
	)
	return st.FeedbackResponse, nil
}

// OverallFeedback runs the overall-feedback pipeline: a single summary
// completion over the child's session history.
func (o *Orchestrator) OverallFeedback(ctx context.Context, req OverallFeedbackRequest) (*OverallFeedbackResponse, error) {
	st := &State{Overall: &req}

	if err := o.run(ctx, st, o.summaryStage); err != nil {
		return nil, err
	}
	if st.OverallResponse == nil {
		return nil, &ErrTerminalMissing{Pipeline: "overall_feedback"}
	}
	return st.OverallResponse, nil
}

// complete renders the named template with vars and sends it to the
// generative provider under the given purpose label.
func (o *Orchestrator) complete(ctx context.Context, purpose, templateName string, vars map[string]any) (string, error) {
	prompt, err := o.renderer.Render(templateName, vars)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", templateName, err)
	}

	resp, err := o.provider.Complete(llm.WithPurpose(ctx, purpose), llm.CompletionRequest{
		System:    o.renderer.SystemRole(templateName),
		Prompt:    prompt,
		MaxTokens: o.opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s completion: %w", purpose, err)
	}
	return resp.Text, nil
}
