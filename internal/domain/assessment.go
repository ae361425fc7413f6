package domain

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

// AssessmentType classifies an assessment.
type AssessmentType string

const (
	AssessmentPsychometric   AssessmentType = "psychometric"
	AssessmentSkills         AssessmentType = "skills"
	AssessmentAptitude       AssessmentType = "aptitude"
	AssessmentPersonality    AssessmentType = "personality"
	AssessmentCareerInterest AssessmentType = "career_interest"
	AssessmentComprehensive  AssessmentType = "comprehensive"
)

func (t AssessmentType) Valid() bool {
	switch t {
	case AssessmentPsychometric, AssessmentSkills, AssessmentAptitude,
		AssessmentPersonality, AssessmentCareerInterest, AssessmentComprehensive:
		return true
	}
	return false
}

// Difficulty tags an assessment; it does not affect scoring.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMixed  Difficulty = "mixed"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMixed:
		return true
	}
	return false
}

// Status is the lifecycle position of an assessment.
// draft -> in_progress -> completed | abandoned
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusAbandoned  Status = "abandoned"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusCompleted, StatusAbandoned:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

const (
	minTitleLength       = 5
	maxTitleLength       = 200
	maxDescriptionLength = 1000
	minTimeLimitSeconds  = 60
)

// Response is one user's answer to one question.
type Response struct {
	QuestionID  string    `json:"question_id"`
	Answer      Answer    `json:"answer"`
	TimeSpent   int       `json:"time_spent"`
	SubmittedAt time.Time `json:"timestamp"`
}

// Results is populated at completion.
type Results struct {
	TotalScore float64     `json:"total_score"`
	MaxScore   float64     `json:"max_score"`
	Percentage int         `json:"percentage"`
	Grade      Grade       `json:"grade"`
	Enrichment *Enrichment `json:"enrichment,omitempty"`
}

// Assessment is one user's attempt at a fixed set of questions.
//
// Methods mutate the receiver in place and are not safe for concurrent use.
// Callers serialize read-modify-write cycles against the store (see Version).
type Assessment struct {
	ID             string
	UserID         string
	Type           AssessmentType
	Title          string
	Description    string
	TotalQuestions int
	TimeLimit      *int // seconds
	Difficulty     Difficulty
	Questions      []Question
	Responses      []Response
	Status         Status
	StartedAt      *time.Time
	CompletedAt    *time.Time
	TimeSpent      int // seconds, set at completion
	Results        *Results
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAssessmentParams holds the caller-supplied parts of a new assessment.
type NewAssessmentParams struct {
	UserID      string
	Type        AssessmentType
	Title       string
	Description string
	TimeLimit   *int
	Difficulty  Difficulty
	Questions   []Question
}

// NewAssessment validates p and builds a draft assessment. The question count
// is taken from the question list.
func NewAssessment(id string, p NewAssessmentParams, now time.Time) (*Assessment, error) {
	difficulty := p.Difficulty
	if difficulty == "" {
		difficulty = DifficultyMixed
	}
	questions := make([]Question, len(p.Questions))
	copy(questions, p.Questions)

	a := &Assessment{
		ID:             id,
		UserID:         p.UserID,
		Type:           p.Type,
		Title:          p.Title,
		Description:    p.Description,
		TotalQuestions: len(questions),
		TimeLimit:      p.TimeLimit,
		Difficulty:     difficulty,
		Questions:      questions,
		Responses:      []Response{},
		Status:         StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the static shape of the assessment and reports every
// violated constraint at once.
func (a *Assessment) Validate() error {
	var errs ValidationErrors

	if a.ID == "" {
		errs = append(errs, NewMissingFieldError("id"))
	}
	if a.UserID == "" {
		errs = append(errs, NewMissingFieldError("user_id"))
	}
	if !a.Type.Valid() {
		errs = append(errs, NewInvalidFormatError("assessment_type", string(a.Type)))
	}
	if n := utf8.RuneCountInString(a.Title); n < minTitleLength || n > maxTitleLength {
		errs = append(errs, NewOutOfRangeError("title", n, minTitleLength, maxTitleLength))
	}
	if n := utf8.RuneCountInString(a.Description); n > maxDescriptionLength {
		errs = append(errs, NewOutOfRangeError("description", n, 0, maxDescriptionLength))
	}
	if !a.Difficulty.Valid() {
		errs = append(errs, NewInvalidFormatError("difficulty", string(a.Difficulty)))
	}
	if a.TimeLimit != nil && *a.TimeLimit < minTimeLimitSeconds {
		errs = append(errs, NewValidationError("time_limit",
			fmt.Sprintf("time_limit must be at least %d seconds", minTimeLimitSeconds)))
	}

	if len(a.Questions) == 0 {
		errs = append(errs, NewValidationError("questions", "at least one question is required"))
	}
	if a.TotalQuestions < 1 {
		errs = append(errs, NewValidationError("total_questions", "total_questions must be at least 1"))
	} else if a.TotalQuestions > len(a.Questions) && len(a.Questions) > 0 {
		errs = append(errs, NewValidationError("total_questions",
			fmt.Sprintf("total_questions (%d) exceeds the number of questions (%d)", a.TotalQuestions, len(a.Questions))))
	}

	errs = append(errs, ValidateQuestions(a.Questions)...)

	return errs.OrNil()
}

// ValidateQuestions checks every question and the uniqueness of their ids.
// Field names are prefixed with the question position, e.g. "questions[2].id".
func ValidateQuestions(questions []Question) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]int, len(questions))
	for i, q := range questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		errs = append(errs, q.Validate(prefix)...)
		if q.ID == "" {
			continue
		}
		if first, dup := seen[q.ID]; dup {
			errs = append(errs, NewValidationError(prefix+".id",
				fmt.Sprintf("duplicate question id %q (first used by questions[%d])", q.ID, first)))
			continue
		}
		seen[q.ID] = i
	}
	return errs
}

// Question returns the question with the given id.
func (a *Assessment) Question(questionID string) (Question, bool) {
	for _, q := range a.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return Question{}, false
}

// Response returns the stored response for the given question id.
func (a *Assessment) Response(questionID string) (Response, bool) {
	if i := a.responseIndex(questionID); i >= 0 {
		return a.Responses[i], true
	}
	return Response{}, false
}

func (a *Assessment) responseIndex(questionID string) int {
	for i, r := range a.Responses {
		if r.QuestionID == questionID {
			return i
		}
	}
	return -1
}

// Start moves a draft assessment to in_progress.
func (a *Assessment) Start(now time.Time) error {
	if a.Status != StatusDraft {
		return NewInvalidStateTransitionError("start", a.Status)
	}
	started := now
	a.Status = StatusInProgress
	a.StartedAt = &started
	a.UpdatedAt = now
	return nil
}

// AddResponse records the answer for questionID, replacing any earlier answer
// for the same question. It never changes the status.
func (a *Assessment) AddResponse(questionID string, answer Answer, timeSpent int, now time.Time) error {
	if a.Status != StatusInProgress {
		return NewInvalidStateTransitionError("add a response to", a.Status)
	}

	var errs ValidationErrors
	if questionID == "" {
		errs = append(errs, NewMissingFieldError("question_id"))
	} else if _, ok := a.Question(questionID); !ok {
		errs = append(errs, NewInvalidFormatError("question_id", questionID))
	}
	if answer.IsZero() {
		errs = append(errs, NewMissingFieldError("answer"))
	}
	if timeSpent < 0 {
		errs = append(errs, NewValidationError("time_spent", "time_spent must not be negative"))
	}
	if len(errs) > 0 {
		return errs
	}

	resp := Response{
		QuestionID:  questionID,
		Answer:      answer,
		TimeSpent:   timeSpent,
		SubmittedAt: now,
	}
	if i := a.responseIndex(questionID); i >= 0 {
		a.Responses[i] = resp
	} else {
		a.Responses = append(a.Responses, resp)
	}
	a.UpdatedAt = now
	return nil
}

// AnsweredCount is the number of distinct answered question ids.
func (a *Assessment) AnsweredCount() int {
	return len(a.Responses)
}

// IsComplete reports whether every configured question has a response.
func (a *Assessment) IsComplete() bool {
	return a.AnsweredCount() >= a.TotalQuestions
}

// Complete moves an in_progress assessment to completed and records the
// total time spent in whole seconds.
func (a *Assessment) Complete(now time.Time) error {
	if a.Status != StatusInProgress {
		return NewInvalidStateTransitionError("complete", a.Status)
	}
	completed := now
	a.Status = StatusCompleted
	a.CompletedAt = &completed
	if a.StartedAt != nil {
		if elapsed := completed.Sub(*a.StartedAt); elapsed > 0 {
			a.TimeSpent = int(elapsed / time.Second)
		} else {
			a.TimeSpent = 0
		}
	}
	a.UpdatedAt = now
	return nil
}

// Abandon terminates an in_progress assessment without results.
func (a *Assessment) Abandon(now time.Time) error {
	if a.Status != StatusInProgress {
		return NewInvalidStateTransitionError("abandon", a.Status)
	}
	a.Status = StatusAbandoned
	a.UpdatedAt = now
	return nil
}

// ProgressPercentage is the rounded share of answered questions.
func (a *Assessment) ProgressPercentage() int {
	if a.TotalQuestions <= 0 {
		return 0
	}
	return int(math.Round(float64(a.AnsweredCount()) / float64(a.TotalQuestions) * 100))
}

// TimeRemaining returns the seconds left before the time limit. ok is false
// when the assessment has no limit or has not started, meaning no deadline.
func (a *Assessment) TimeRemaining(now time.Time) (remaining int, ok bool) {
	if a.TimeLimit == nil || a.StartedAt == nil {
		return 0, false
	}
	elapsed := int(now.Sub(*a.StartedAt) / time.Second)
	remaining = *a.TimeLimit - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// IsTimeExceeded is advisory; it never changes the status.
func (a *Assessment) IsTimeExceeded(now time.Time) bool {
	remaining, ok := a.TimeRemaining(now)
	return ok && remaining == 0
}

// AttachEnrichment replaces the enrichment part of the results.
func (a *Assessment) AttachEnrichment(e *Enrichment) error {
	if a.Status != StatusCompleted || a.Results == nil {
		return NewInvalidStateTransitionError("attach enrichment to", a.Status)
	}
	a.Results.Enrichment = e
	return nil
}

// Summary is the list view of an assessment.
type Summary struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        AssessmentType `json:"type"`
	Status      Status         `json:"status"`
	Progress    int            `json:"progress"`
	Score       int            `json:"score"`
	Grade       string         `json:"grade"`
	TimeSpent   int            `json:"time_spent"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

func (a *Assessment) Summary() Summary {
	s := Summary{
		ID:          a.ID,
		Title:       a.Title,
		Type:        a.Type,
		Status:      a.Status,
		Progress:    a.ProgressPercentage(),
		Grade:       "N/A",
		TimeSpent:   a.TimeSpent,
		CompletedAt: a.CompletedAt,
	}
	if a.Results != nil {
		s.Score = a.Results.Percentage
		if a.Results.Grade != "" {
			s.Grade = string(a.Results.Grade)
		}
	}
	return s
}
