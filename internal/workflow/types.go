package workflow

// ChildProfile describes the child a curriculum is generated for.
type ChildProfile struct {
	ChildID   string   `json:"child_id"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Interests []string `json:"interests"`
}

// AssessmentSubmission is a child's quiz answers for one lesson. The quiz
// text is carried redundantly so feedback does not depend on a store read
// racing the lesson write.
type AssessmentSubmission struct {
	ChildID       string `json:"child_id"`
	LessonID      string `json:"lesson_id"`
	ResponsesText string `json:"responses_text"`
	MaterialsText string `json:"materials_text"`
}

// HistoryEntry is one past session as supplied by the caller of the
// overall-feedback pipeline.
type HistoryEntry struct {
	Interests string `json:"interests"`
	Topic     string `json:"topic"`
	Feedback  string `json:"feedback"`
}

// OverallFeedbackRequest asks for a cross-session progress summary.
type OverallFeedbackRequest struct {
	Name    string         `json:"name"`
	Age     int            `json:"age"`
	History []HistoryEntry `json:"history"`
}

// LearningResponse is the initial-lesson pipeline's terminal output.
type LearningResponse struct {
	Lesson        string `json:"lesson"`
	MaterialsText string `json:"materials_text"`
	LessonID      string `json:"lesson_id"`
}

// FeedbackResponse is the assessment-feedback pipeline's terminal output.
type FeedbackResponse struct {
	Feedback   string `json:"feedback"`
	NextLesson string `json:"next_lesson,omitempty"`
}

// OverallFeedbackResponse is the overall-feedback pipeline's terminal output.
type OverallFeedbackResponse struct {
	Feedback string `json:"feedback"`
}

// State is the mutable carrier threaded through one pipeline invocation.
// It is created fresh per request and discarded when the pipeline returns.
// Each stage reads the fields written by earlier stages; a stage whose
// required fields are absent leaves the state untouched.
type State struct {
	Profile    *ChildProfile
	Assessment *AssessmentSubmission
	Overall    *OverallFeedbackRequest

	Curriculum string
	Embedding  []float32
	// RelatedDocs nil means retrieval has not run; a non-nil empty slice
	// means it ran against an empty collection.
	RelatedDocs []string
	Lesson      string
	Materials   []string
	LessonID    string
	Responses   string
	Feedback    string
	NextLesson  string

	LearningResponse *LearningResponse
	FeedbackResponse *FeedbackResponse
	OverallResponse  *OverallFeedbackResponse
}
