package validation

import (
	"testing"

	"career-guide/internal/domain"
	"career-guide/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() *dto.CreateAssessmentRequest {
	return &dto.CreateAssessmentRequest{
		AssessmentType: "skills",
		Title:          "Go fundamentals",
		Questions: []dto.QuestionRequest{
			{ID: "q1", Type: "multiple_choice", Question: "Which keyword starts a goroutine?", Options: []string{"go", "async"}},
			{ID: "q2", Type: "boolean", Question: "Maps are safe for concurrent writes."},
		},
	}
}

func fieldsOf(errs domain.ValidationErrors) map[string]domain.ErrorCode {
	out := make(map[string]domain.ErrorCode, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Code
	}
	return out
}

func TestValidateCreateAssessmentRequest_Valid(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.ValidateCreateAssessmentRequest(validCreateRequest()))
}

func TestValidateCreateAssessmentRequest_CollectsAll(t *testing.T) {
	v := NewValidator()
	weight := 2.0
	limit := 10
	req := validCreateRequest()
	req.AssessmentType = "horoscope"
	req.Title = "Go"
	req.TimeLimit = &limit
	req.Questions[0].Options = []string{"go"}
	req.Questions[0].Weight = &weight
	req.Questions[1].Options = []string{"yes", "no"}
	req.Questions = append(req.Questions, dto.QuestionRequest{ID: "q3", Type: "essay"})

	fields := fieldsOf(v.ValidateCreateAssessmentRequest(req))

	assert.Equal(t, domain.CodeInvalidFormat, fields["assessment_type"])
	assert.Equal(t, domain.CodeOutOfRange, fields["title"])
	assert.Equal(t, domain.CodeOutOfRange, fields["time_limit"])
	assert.Equal(t, domain.CodeValidation, fields["questions[0].options"])
	assert.Equal(t, domain.CodeOutOfRange, fields["questions[0].weight"])
	assert.Equal(t, domain.CodeValidation, fields["questions[1].options"])
	assert.Equal(t, domain.CodeInvalidFormat, fields["questions[2].type"])
	assert.Equal(t, domain.CodeMissingField, fields["questions[2].question"])
}

func TestValidateCreateAssessmentRequest_IncludesQuestionRules(t *testing.T) {
	v := NewValidator()
	numeric := domain.NumberAnswer(2)
	partial := domain.ListAnswer("a")
	req := validCreateRequest()
	req.Title = "x"
	req.Questions = []dto.QuestionRequest{
		{ID: "q", Type: "ranking", Question: "Order these", Options: []string{"a", "b"}, CorrectAnswer: &partial},
		{ID: "q", Type: "boolean", Question: "True?", CorrectAnswer: &numeric},
	}

	errs := v.ValidateCreateAssessmentRequest(req)
	fields := fieldsOf(errs)

	assert.Equal(t, domain.CodeOutOfRange, fields["title"])
	assert.Equal(t, domain.CodeValidation, fields["questions[0].correct_answer"])
	assert.Equal(t, domain.CodeValidation, fields["questions[1].correct_answer"])
	assert.Equal(t, domain.CodeValidation, fields["questions[1].id"])
	assert.Len(t, errs, 4)
}

func TestValidateCreateAssessmentRequest_RequiresQuestions(t *testing.T) {
	v := NewValidator()
	req := validCreateRequest()
	req.Questions = nil

	fields := fieldsOf(v.ValidateCreateAssessmentRequest(req))
	_, ok := fields["questions"]
	assert.True(t, ok)
}

func TestValidateSubmitResponseRequest(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateSubmitResponseRequest(&dto.SubmitResponseRequest{TimeSpent: -5})
	fields := fieldsOf(errs)
	assert.Equal(t, domain.CodeMissingField, fields["question_id"])
	assert.Equal(t, domain.CodeMissingField, fields["answer"])
	assert.Equal(t, domain.CodeOutOfRange, fields["time_spent"])

	ok := v.ValidateSubmitResponseRequest(&dto.SubmitResponseRequest{QuestionID: "q1", Answer: domain.NumberAnswer(3)})
	assert.Empty(t, ok)
}

func TestValidateListQuery(t *testing.T) {
	v := NewValidator()

	require.Empty(t, v.ValidateListQuery(&dto.ListAssessmentsQuery{}))
	require.Empty(t, v.ValidateListQuery(&dto.ListAssessmentsQuery{Status: "completed", Limit: 100}))

	fields := fieldsOf(v.ValidateListQuery(&dto.ListAssessmentsQuery{Status: "paused", Limit: 101, Offset: -1}))
	assert.Equal(t, domain.CodeInvalidFormat, fields["status"])
	assert.Equal(t, domain.CodeOutOfRange, fields["limit"])
	assert.Equal(t, domain.CodeOutOfRange, fields["offset"])
}
