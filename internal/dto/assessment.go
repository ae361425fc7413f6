package dto

import (
	"time"

	"career-guide/internal/domain"
)

// QuestionRequest is one question in a create request.
type QuestionRequest struct {
	ID            string         `json:"id" validate:"required,max=64"`
	Type          string         `json:"type" validate:"required,oneof=multiple_choice likert_scale text ranking boolean"`
	Question      string         `json:"question" validate:"required,max=2000"`
	Options       []string       `json:"options,omitempty" validate:"omitempty,max=20,dive,required,max=500"`
	CorrectAnswer *domain.Answer `json:"correct_answer,omitempty" swaggertype:"object" validate:"-"`
	Weight        *float64       `json:"weight,omitempty" validate:"omitempty,gte=0,lte=1"`
	Category      string         `json:"category,omitempty" validate:"max=100"`
	Subcategory   string         `json:"subcategory,omitempty" validate:"max=100"`
}

// CreateAssessmentRequest is the request body for creating an assessment.
// @Description Request body for creating a draft assessment
type CreateAssessmentRequest struct {
	// UserID creates the assessment on behalf of another user. Admin only.
	UserID         string            `json:"user_id,omitempty" validate:"omitempty,max=64"`
	AssessmentType string            `json:"assessment_type" validate:"required,oneof=psychometric skills aptitude personality career_interest comprehensive"`
	Title          string            `json:"title" validate:"required,min=5,max=200"`
	Description    string            `json:"description,omitempty" validate:"max=1000"`
	TimeLimit      *int              `json:"time_limit,omitempty" validate:"omitempty,gte=60"`
	Difficulty     string            `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard mixed"`
	Questions      []QuestionRequest `json:"questions" validate:"required,min=1,max=200,dive"`
}

// ToParams converts the request into engine parameters for owner.
func (r CreateAssessmentRequest) ToParams(owner string) domain.NewAssessmentParams {
	questions := make([]domain.Question, 0, len(r.Questions))
	for _, q := range r.Questions {
		weight := domain.DefaultQuestionWeight
		if q.Weight != nil {
			weight = *q.Weight
		}
		questions = append(questions, domain.Question{
			ID:            q.ID,
			Type:          domain.QuestionType(q.Type),
			Prompt:        q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Weight:        weight,
			Category:      q.Category,
			Subcategory:   q.Subcategory,
		})
	}
	return domain.NewAssessmentParams{
		UserID:      owner,
		Type:        domain.AssessmentType(r.AssessmentType),
		Title:       r.Title,
		Description: r.Description,
		TimeLimit:   r.TimeLimit,
		Difficulty:  domain.Difficulty(r.Difficulty),
		Questions:   questions,
	}
}

// SubmitResponseRequest is the request body for answering one question.
// @Description Request body for submitting an answer
type SubmitResponseRequest struct {
	QuestionID string        `json:"question_id" validate:"required,max=64"`
	Answer     domain.Answer `json:"answer" swaggertype:"object" validate:"-"`
	TimeSpent  int           `json:"time_spent" validate:"gte=0"`
}

// ListAssessmentsQuery holds the query parameters of GET /assessments.
type ListAssessmentsQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=draft in_progress completed abandoned"`
	Type   string `query:"type" validate:"omitempty,oneof=psychometric skills aptitude personality career_interest comprehensive"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" validate:"min=0"`
}

// DefaultListLimit applies when limit is omitted.
const DefaultListLimit = 20

func (q ListAssessmentsQuery) Filter() domain.AssessmentFilter {
	return domain.AssessmentFilter{
		Status: domain.Status(q.Status),
		Type:   domain.AssessmentType(q.Type),
	}
}

func (q ListAssessmentsQuery) Page() domain.Page {
	limit := q.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	return domain.Page{Limit: limit, Offset: q.Offset}
}

// AssessmentResponse is the full view of one assessment.
// @Description Assessment with progress and timing
type AssessmentResponse struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	AssessmentType string            `json:"assessment_type"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	TotalQuestions int               `json:"total_questions"`
	TimeLimit      *int              `json:"time_limit,omitempty"`
	Difficulty     string            `json:"difficulty"`
	Questions      []domain.Question `json:"questions"`
	Responses      []domain.Response `json:"responses"`
	Status         string            `json:"status"`
	StartedAt      *time.Time        `json:"started_at,omitempty"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	TimeSpent      int               `json:"time_spent"`
	Results        *domain.Results   `json:"results,omitempty"`
	Progress       int               `json:"progress"`
	TimeRemaining  *int              `json:"time_remaining,omitempty"`
	TimeExceeded   bool              `json:"time_exceeded"`
	Version        int               `json:"version"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewAssessmentResponse builds the view of a at now. Correct answers are
// withheld until the assessment is completed unless revealAnswers is set.
func NewAssessmentResponse(a *domain.Assessment, now time.Time, revealAnswers bool) AssessmentResponse {
	questions := make([]domain.Question, len(a.Questions))
	copy(questions, a.Questions)
	if !revealAnswers && a.Status != domain.StatusCompleted {
		for i := range questions {
			questions[i].CorrectAnswer = nil
		}
	}
	responses := a.Responses
	if responses == nil {
		responses = []domain.Response{}
	}

	resp := AssessmentResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		AssessmentType: string(a.Type),
		Title:          a.Title,
		Description:    a.Description,
		TotalQuestions: a.TotalQuestions,
		TimeLimit:      a.TimeLimit,
		Difficulty:     string(a.Difficulty),
		Questions:      questions,
		Responses:      responses,
		Status:         string(a.Status),
		StartedAt:      a.StartedAt,
		CompletedAt:    a.CompletedAt,
		TimeSpent:      a.TimeSpent,
		Results:        a.Results,
		Progress:       a.ProgressPercentage(),
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
	if a.Status == domain.StatusInProgress {
		if remaining, ok := a.TimeRemaining(now); ok {
			resp.TimeRemaining = &remaining
			resp.TimeExceeded = remaining == 0
		}
	}
	return resp
}

// AssessmentListResponse is one page of assessment summaries.
type AssessmentListResponse struct {
	Items      []domain.Summary `json:"items"`
	Pagination PaginationInfo   `json:"pagination"`
}

// PsychometricProfileResponse is the stored profile of the current user.
type PsychometricProfileResponse struct {
	AssessmentID        string                    `json:"assessment_id"`
	PersonalityType     string                    `json:"personality_type"`
	CognitiveAbilities  domain.CognitiveAbilities `json:"cognitive_abilities"`
	LearningStyle       string                    `json:"learning_style"`
	WorkStyle           string                    `json:"work_style"`
	Interests           []string                  `json:"interests"`
	Strengths           []string                  `json:"strengths"`
	AreasForImprovement []string                  `json:"areas_for_improvement"`
	AssessedAt          time.Time                 `json:"assessed_at"`
}

func NewPsychometricProfileResponse(p *domain.PsychometricProfile) PsychometricProfileResponse {
	return PsychometricProfileResponse{
		AssessmentID:        p.AssessmentID,
		PersonalityType:     p.PersonalityType,
		CognitiveAbilities:  p.CognitiveAbilities,
		LearningStyle:       p.LearningStyle,
		WorkStyle:           p.WorkStyle,
		Interests:           p.Interests,
		Strengths:           p.Strengths,
		AreasForImprovement: p.AreasForImprovement,
		AssessedAt:          p.AssessedAt,
	}
}
