package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/minho-jung/kidlearn/internal/llm"
	"github.com/minho-jung/kidlearn/internal/prompts"
	"github.com/minho-jung/kidlearn/internal/store"
)

// curriculumStage drafts the learning topics from the child's profile.
func (o *Orchestrator) curriculumStage(ctx context.Context, st *State) error {
	if st.Profile == nil {
		return nil
	}

	text, err := o.complete(ctx, "curriculum", prompts.InitialCurriculum, map[string]any{
		"name":      st.Profile.Name,
		"age":       st.Profile.Age,
		"interests": strings.Join(st.Profile.Interests, ", "),
	})
	if err != nil {
		return err
	}

	st.Curriculum = text
	return nil
}

// retrievalStage embeds the curriculum and fetches the most similar
// stored documents. An empty collection yields an empty (non-nil) doc
// list so the first lesson for a fresh install still generates.
func (o *Orchestrator) retrievalStage(ctx context.Context, st *State) error {
	if st.Curriculum == "" {
		return nil
	}

	vec, err := o.embedder.Embed(llm.WithPurpose(ctx, "retrieval"), st.Curriculum)
	if err != nil {
		return fmt.Errorf("embed curriculum: %w", err)
	}

	hits, err := o.docs.QueryNearest(ctx, store.DefaultCollection, vec, o.opts.TopK)
	if err != nil {
		return fmt.Errorf("query similar documents: %w", err)
	}

	docs := make([]string, 0, len(hits))
	for _, h := range hits {
		docs = append(docs, h.Text)
	}

	st.Embedding = vec
	st.RelatedDocs = docs
	return nil
}

// generationStage produces the lesson and quiz, persists the session, and
// indexes the lesson text for future retrievals.
func (o *Orchestrator) generationStage(ctx context.Context, st *State) error {
	if st.Curriculum == "" || st.RelatedDocs == nil || st.Profile == nil {
		return nil
	}

	text, err := o.complete(ctx, "materials", prompts.Materials, map[string]any{
		"curriculum": st.Curriculum,
		"docs":       st.RelatedDocs,
	})
	if err != nil {
		return err
	}

	lesson, materialsText := SplitAnswerKey(text)
	quiz, answerKey := SplitAnswerKey(materialsText)

	lessonID := uuid.NewString()

	session := &store.LessonSession{
		LessonID:   lessonID,
		ChildID:    st.Profile.ChildID,
		Curriculum: st.Curriculum,
		Lesson:     lesson,
		Quiz:       quiz,
		AnswerKey:  answerKey,
	}
	if err := o.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("save lesson session: %w", err)
	}

	err = o.docs.Upsert(ctx, lessonID, store.DefaultCollection, lesson, st.Embedding, map[string]any{
		"child_id":  st.Profile.ChildID,
		"lesson_id": lessonID,
		"type":      "lesson",
	})
	if err != nil {
		return fmt.Errorf("index lesson document: %w", err)
	}

	st.Lesson = lesson
	st.LessonID = lessonID
	st.Materials = nil
	if materialsText != "" {
		st.Materials = []string{materialsText}
	}
	st.LearningResponse = &LearningResponse{
		Lesson:        lesson,
		MaterialsText: materialsText,
		LessonID:      lessonID,
	}
	return nil
}

// submissionStage embeds and stores the child's quiz answers.
func (o *Orchestrator) submissionStage(ctx context.Context, st *State) error {
	if st.Assessment == nil {
		return nil
	}
	sub := st.Assessment

	vec, err := o.embedder.Embed(llm.WithPurpose(ctx, "assessment"), sub.ResponsesText)
	if err != nil {
		return fmt.Errorf("embed assessment: %w", err)
	}

	docID := fmt.Sprintf("%s_%s_resp", sub.ChildID, sub.LessonID)
	err = o.docs.Upsert(ctx, docID, store.DefaultCollection, sub.ResponsesText, vec, map[string]any{
		"child_id":  sub.ChildID,
		"lesson_id": sub.LessonID,
		"type":      "assessment",
		"materials": sub.MaterialsText,
	})
	if err != nil {
		return fmt.Errorf("store assessment: %w", err)
	}

	st.Responses = sub.ResponsesText
	return nil
}

// feedbackStage reviews the answers and attaches the feedback to the
// session. A submission for an unknown lesson still gets feedback; the
// attach is skipped with a warning.
func (o *Orchestrator) feedbackStage(ctx context.Context, st *State) error {
	if st.Responses == "" || st.Assessment == nil {
		return nil
	}

	text, err := o.complete(ctx, "feedback", prompts.Feedback, map[string]any{
		"materials": st.Assessment.MaterialsText,
		"responses": st.Responses,
	})
	if err != nil {
		return err
	}

	if err := o.sessions.AttachFeedback(ctx, st.Assessment.ChildID, st.Assessment.LessonID, text, ""); err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			return fmt.Errorf("attach feedback: %w", err)
		}
		o.log.Warn("unmatched submission, feedback not attached",
			"child_id", st.Assessment.ChildID,
			"lesson_id", st.Assessment.LessonID,
		)
	}

	st.Feedback = text
	st.FeedbackResponse = &FeedbackResponse{Feedback: text}
	return nil
}

// nextLessonStage plans the follow-up lesson from the session's
// curriculum and the fresh feedback. Disabled via Options.NextLesson.
func (o *Orchestrator) nextLessonStage(ctx context.Context, st *State) error {
	if !o.opts.NextLesson {
		return nil
	}
	if st.Feedback == "" || st.Assessment == nil {
		return nil
	}

	curriculum, err := o.previousCurriculum(ctx, st.Assessment)
	if err != nil {
		return err
	}

	text, err := o.complete(ctx, "next_lesson", prompts.NextMaterial, map[string]any{
		"curriculum": curriculum,
		"feedback":   st.Feedback,
	})
	if err != nil {
		return err
	}

	st.NextLesson = text
	if st.FeedbackResponse != nil {
		st.FeedbackResponse.NextLesson = text
	}

	if err := o.sessions.AttachFeedback(ctx, st.Assessment.ChildID, st.Assessment.LessonID, st.Feedback, text); err != nil && !errors.Is(err, store.ErrSessionNotFound) {
		return fmt.Errorf("attach next lesson: %w", err)
	}
	return nil
}

// previousCurriculum finds what the child was studying: the session
// record when it exists, otherwise the latest stored assessment for the
// child, otherwise the quiz text carried in the submission.
func (o *Orchestrator) previousCurriculum(ctx context.Context, sub *AssessmentSubmission) (string, error) {
	session, err := o.sessions.Get(ctx, sub.ChildID, sub.LessonID)
	if err == nil {
		return session.Curriculum, nil
	}
	if !errors.Is(err, store.ErrSessionNotFound) {
		return "", fmt.Errorf("load session: %w", err)
	}

	doc, err := o.docs.LatestByFilter(ctx, store.DefaultCollection, map[string]any{
		"child_id": sub.ChildID,
		"type":     "assessment",
	})
	if err != nil {
		return "", fmt.Errorf("load latest assessment: %w", err)
	}
	if doc != nil {
		if materials, ok := doc.Meta["materials"].(string); ok && materials != "" {
			return materials, nil
		}
	}
	return sub.MaterialsText, nil
}

// summaryStage produces the cross-session progress summary. An empty
// history is valid and still yields a summary.
func (o *Orchestrator) summaryStage(ctx context.Context, st *State) error {
	if st.Overall == nil {
		return nil
	}

	var sb strings.Builder
	for _, entry := range st.Overall.History {
		fmt.Fprintf(&sb, "Topic: %s\nInterests: %s\nFeedback: %s\n\n", entry.Topic, entry.Interests, entry.Feedback)
	}
	history := strings.TrimSpace(sb.String())
	if history == "" {
		history = "No sessions recorded yet."
	}

	text, err := o.complete(ctx, "summary", prompts.FeedbackSummary, map[string]any{
		"name":    st.Overall.Name,
		"age":     st.Overall.Age,
		"history": history,
	})
	if err != nil {
		return err
	}

	st.OverallResponse = &OverallFeedbackResponse{Feedback: text}
	return nil
}
