package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/minho-jung/kidlearn/internal/logger"
)

// ErrSessionNotFound is returned when a lesson session does not exist.
var ErrSessionNotFound = errors.New("lesson session not found")

// LessonSession is one generated learning session for a child. Feedback
// and NextLesson are filled in after the child submits their quiz answers.
type LessonSession struct {
	LessonID   string `gorm:"primaryKey"`
	ChildID    string `gorm:"index;not null"`
	Curriculum string
	Lesson     string
	Quiz       string
	AnswerKey  string
	Feedback   string
	NextLesson string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SessionRepo stores lesson sessions. History is append-only: sessions are
// created once and only their feedback fields are updated afterwards.
type SessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// Save inserts a new lesson session.
func (r *SessionRepo) Save(ctx context.Context, s *LessonSession) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("save session %s: %w", s.LessonID, err)
	}
	return nil
}

// Get returns the child's session with the given lesson ID. Sessions are
// owned: another child's lesson ID does not resolve.
func (r *SessionRepo) Get(ctx context.Context, childID, lessonID string) (*LessonSession, error) {
	var s LessonSession
	err := r.db.WithContext(ctx).First(&s, "lesson_id = ? AND child_id = ?", lessonID, childID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", lessonID, err)
	}
	return &s, nil
}

// AttachFeedback records feedback (and optionally the next lesson plan)
// on an existing session. A later submission for the same lesson
// overwrites the earlier feedback. The session must belong to the
// submitting child; a lesson ID owned by another child (or unknown
// entirely) returns ErrSessionNotFound, which callers treat as non-fatal
// since the feedback text itself has already been produced.
func (r *SessionRepo) AttachFeedback(ctx context.Context, childID, lessonID, feedback, nextLesson string) error {
	updates := map[string]any{"feedback": feedback}
	if nextLesson != "" {
		updates["next_lesson"] = nextLesson
	}

	res := r.db.WithContext(ctx).
		Model(&LessonSession{}).
		Where("lesson_id = ? AND child_id = ?", lessonID, childID).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("attach feedback to %s: %w", lessonID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// HistoryByChild returns all sessions for a child, newest first.
func (r *SessionRepo) HistoryByChild(ctx context.Context, childID string) ([]LessonSession, error) {
	var sessions []LessonSession
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", childID, err)
	}
	return sessions, nil
}
