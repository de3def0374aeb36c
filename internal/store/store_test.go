package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/minho-jung/kidlearn/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "kidlearn.db"), logger.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDocumentUpsert_Idempotent(t *testing.T) {
	s := newTestStore(t)
	docs := s.Documents()
	ctx := context.Background()

	vec := []float32{1, 0, 0}
	if err := docs.Upsert(ctx, "doc-1", DefaultCollection, "counting lesson", vec, map[string]any{"child_id": "c1"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := docs.Upsert(ctx, "doc-1", DefaultCollection, "counting lesson v2", vec, map[string]any{"child_id": "c1"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	hits, err := docs.QueryNearest(ctx, DefaultCollection, vec, 10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 document after re-upsert, got %d", len(hits))
	}
	if hits[0].Text != "counting lesson v2" {
		t.Fatalf("expected updated text, got %q", hits[0].Text)
	}
}

func TestQueryNearest_Ordering(t *testing.T) {
	s := newTestStore(t)
	docs := s.Documents()
	ctx := context.Background()

	if err := docs.Upsert(ctx, "exact", DefaultCollection, "exact match", []float32{1, 0, 0}, nil); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := docs.Upsert(ctx, "close", DefaultCollection, "close match", []float32{0.9, 0.1, 0}, nil); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := docs.Upsert(ctx, "far", DefaultCollection, "far match", []float32{0, 0, 1}, nil); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	// Different dimension, must be skipped.
	if err := docs.Upsert(ctx, "odd", DefaultCollection, "odd dims", []float32{1, 0}, nil); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	hits, err := docs.QueryNearest(ctx, DefaultCollection, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].ID != "exact" || hits[1].ID != "close" {
		t.Fatalf("unexpected order: %s, %s", hits[0].ID, hits[1].ID)
	}
}

func TestQueryNearest_EmptyCollection(t *testing.T) {
	s := newTestStore(t)

	hits, err := s.Documents().QueryNearest(context.Background(), DefaultCollection, []float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits, got %d", len(hits))
	}
}

func TestLatestByFilter(t *testing.T) {
	s := newTestStore(t)
	docs := s.Documents()
	ctx := context.Background()

	if err := docs.Upsert(ctx, "a", DefaultCollection, "old", []float32{1}, map[string]any{"child_id": "c1", "type": "assessment"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if err := docs.Upsert(ctx, "b", DefaultCollection, "new", []float32{1}, map[string]any{"child_id": "c1", "type": "assessment"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := docs.Upsert(ctx, "c", DefaultCollection, "other child", []float32{1}, map[string]any{"child_id": "c2", "type": "assessment"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	doc, err := docs.LatestByFilter(ctx, DefaultCollection, map[string]any{"child_id": "c1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if doc == nil || doc.ID != "b" {
		t.Fatalf("expected newest doc 'b', got %+v", doc)
	}

	doc, err = docs.LatestByFilter(ctx, DefaultCollection, map[string]any{"child_id": "c3"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if doc != nil {
		t.Fatalf("expected no match, got %+v", doc)
	}
}

func TestLatestByFilter_TimestampTie(t *testing.T) {
	s := newTestStore(t)
	docs := s.Documents()
	ctx := context.Background()

	if err := docs.Upsert(ctx, "older", DefaultCollection, "older", []float32{1}, map[string]any{"child_id": "c1"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := docs.Upsert(ctx, "newer", DefaultCollection, "newer", []float32{1}, map[string]any{"child_id": "c1"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Force identical timestamps; insertion order must break the tie.
	ts := time.Now()
	if err := s.db.Model(&Document{}).Where("1 = 1").Update("created_at", ts).Error; err != nil {
		t.Fatalf("level timestamps: %v", err)
	}

	doc, err := docs.LatestByFilter(ctx, DefaultCollection, map[string]any{"child_id": "c1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if doc == nil || doc.ID != "newer" {
		t.Fatalf("expected last-inserted doc on timestamp tie, got %+v", doc)
	}
}

func TestSessionSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	sessions := s.Sessions()
	ctx := context.Background()

	sess := &LessonSession{
		LessonID:   "lesson-1",
		ChildID:    "child-1",
		Curriculum: "1. Dinosaurs",
		Lesson:     "Dinosaurs were big.",
		Quiz:       "Q1: Were dinosaurs big?",
		AnswerKey:  "A1: Yes.",
	}
	if err := sessions.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := sessions.Get(ctx, "child-1", "lesson-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ChildID != "child-1" || got.Quiz != "Q1: Were dinosaurs big?" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if _, err := sessions.Get(ctx, "child-1", "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got: %v", err)
	}

	// Another child cannot resolve this session.
	if _, err := sessions.Get(ctx, "child-2", "lesson-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for wrong child, got: %v", err)
	}
}

func TestAttachFeedback_Overwrites(t *testing.T) {
	s := newTestStore(t)
	sessions := s.Sessions()
	ctx := context.Background()

	if err := sessions.Save(ctx, &LessonSession{LessonID: "l1", ChildID: "c1"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := sessions.AttachFeedback(ctx, "c1", "l1", "first feedback", ""); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := sessions.AttachFeedback(ctx, "c1", "l1", "second feedback", "next plan"); err != nil {
		t.Fatalf("attach: %v", err)
	}

	got, err := sessions.Get(ctx, "c1", "l1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Feedback != "second feedback" {
		t.Fatalf("expected latest feedback to win, got %q", got.Feedback)
	}
	if got.NextLesson != "next plan" {
		t.Fatalf("expected next lesson plan, got %q", got.NextLesson)
	}

	if err := sessions.AttachFeedback(ctx, "c1", "unknown", "fb", ""); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got: %v", err)
	}
}

func TestAttachFeedback_WrongChildDoesNotMatch(t *testing.T) {
	s := newTestStore(t)
	sessions := s.Sessions()
	ctx := context.Background()

	if err := sessions.Save(ctx, &LessonSession{LessonID: "l1", ChildID: "c1", Feedback: "original"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	err := sessions.AttachFeedback(ctx, "c2", "l1", "from someone else", "")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for wrong child, got: %v", err)
	}

	got, err := sessions.Get(ctx, "c1", "l1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Feedback != "original" {
		t.Fatalf("owner's feedback was overwritten: %q", got.Feedback)
	}
}

func TestHistoryByChild_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	sessions := s.Sessions()
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"l1", "l2", "l3"} {
		sess := &LessonSession{
			LessonID:  id,
			ChildID:   "c1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := sessions.Save(ctx, sess); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	if err := sessions.Save(ctx, &LessonSession{LessonID: "other", ChildID: "c2"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	history, err := sessions.HistoryByChild(ctx, "c1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(history))
	}
	if history[0].LessonID != "l3" || history[2].LessonID != "l1" {
		t.Fatalf("expected newest first, got %s..%s", history[0].LessonID, history[2].LessonID)
	}
}
