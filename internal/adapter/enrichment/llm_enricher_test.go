package enrichment

import (
	"context"
	"errors"
	"testing"
	"time"

	"career-guide/internal/config"
	"career-guide/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel is an llms.Model returning a canned completion.
type fakeModel struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, m := range messages {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				f.prompts = append(f.prompts, text.Text)
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.response}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func completedAssessment(t *testing.T, typ domain.AssessmentType) *domain.Assessment {
	t.Helper()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	correct := domain.TextAnswer("B")
	a, err := domain.NewAssessment("a1", domain.NewAssessmentParams{
		UserID: "user1",
		Type:   typ,
		Title:  "Career check",
		Questions: []domain.Question{
			{ID: "q1", Type: domain.QuestionMultipleChoice, Prompt: "Pick one", Options: []string{"A", "B"}, CorrectAnswer: &correct, Weight: 1, Category: "logic"},
			{ID: "q2", Type: domain.QuestionText, Prompt: "Describe your ideal team", Weight: 1},
		},
	}, now)
	require.NoError(t, err)
	require.NoError(t, a.Start(now))
	require.NoError(t, a.AddResponse("q1", domain.TextAnswer("B"), 5, now.Add(time.Minute)))
	return a
}

func TestLLMEnricher_Psychometric(t *testing.T) {
	model := &fakeModel{response: `<think>reasoning here</think>Sure! {"personality_type":"INTJ","career_fit":140,"learning_style":"Visual",
		"work_style":"Independent","communication_style":"Direct","leadership_potential":72,"risk_tolerance":"High",
		"strengths":["Focus"],"areas_for_improvement":["Delegation"],
		"recommendations":[{"type":"career_path","title":"Data Engineer","description":"Build pipelines","priority":"High"},
		{"type":"hobby","title":"Chess"}]}`}
	enricher := NewLLMEnricher(model, 0.7)
	a := completedAssessment(t, domain.AssessmentPsychometric)

	e, err := enricher.Enrich(context.Background(), domain.EnrichmentPsychometric, a)
	require.NoError(t, err)
	require.True(t, e.Matches(domain.EnrichmentPsychometric))
	assert.False(t, e.Fallback)
	assert.Equal(t, "INTJ", e.Psychometric.PersonalityType)
	assert.Equal(t, 100.0, e.Psychometric.CareerFit)
	assert.Equal(t, domain.RiskHigh, e.Psychometric.RiskTolerance)
	require.Len(t, e.Psychometric.Recommendations, 1)
	assert.Equal(t, domain.PriorityHigh, e.Psychometric.Recommendations[0].Priority)

	require.Len(t, model.prompts, 1)
	prompt := model.prompts[0]
	assert.Contains(t, prompt, "Assessment Type: psychometric")
	assert.Contains(t, prompt, "Q1: Pick one\nAnswer: B\nCategory: logic")
	assert.Contains(t, prompt, "Q2: Describe your ideal team\nAnswer: No response\nCategory: General")
	assert.Contains(t, prompt, "Grade:")
}

func TestLLMEnricher_Skills(t *testing.T) {
	model := &fakeModel{response: `{"skill_scores":{"go":88,"sql":-3},"recommendations":[{"type":"course","title":"Advanced SQL"}]}`}
	a := completedAssessment(t, domain.AssessmentSkills)

	e, err := NewLLMEnricher(model, 0.7).Enrich(context.Background(), domain.EnrichmentSkills, a)
	require.NoError(t, err)
	require.True(t, e.Matches(domain.EnrichmentSkills))
	assert.Equal(t, 88.0, e.Skills.SkillScores["go"])
	assert.Equal(t, 0.0, e.Skills.SkillScores["sql"])
	require.Len(t, e.Skills.Recommendations, 1)
	assert.Equal(t, domain.PriorityMedium, e.Skills.Recommendations[0].Priority)
}

func TestLLMEnricher_CareerInterest(t *testing.T) {
	model := &fakeModel{response: `{"career_interests":[{"category":"Investigative","score":81},{"category":"","score":50}]}`}
	a := completedAssessment(t, domain.AssessmentCareerInterest)

	e, err := NewLLMEnricher(model, 0.7).Enrich(context.Background(), domain.EnrichmentCareerInterest, a)
	require.NoError(t, err)
	require.True(t, e.Matches(domain.EnrichmentCareerInterest))
	require.Len(t, e.CareerInterest.CareerInterests, 1)
	assert.Equal(t, "Investigative", e.CareerInterest.CareerInterests[0].Category)
	assert.NotNil(t, e.CareerInterest.Recommendations)
}

func TestLLMEnricher_Errors(t *testing.T) {
	a := completedAssessment(t, domain.AssessmentSkills)

	tests := []struct {
		name  string
		model *fakeModel
	}{
		{name: "model failure", model: &fakeModel{err: errors.New("connection refused")}},
		{name: "no JSON", model: &fakeModel{response: "I cannot help with that."}},
		{name: "malformed JSON", model: &fakeModel{response: `{"skill_scores": [1, 2]}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLLMEnricher(tt.model, 0.7).Enrich(context.Background(), domain.EnrichmentSkills, a)
			assert.True(t, errors.Is(err, domain.ErrLLMService))
		})
	}
}

func TestLLMEnricher_DoesNotMutateAssessment(t *testing.T) {
	model := &fakeModel{response: `{"skill_scores":{}}`}
	a := completedAssessment(t, domain.AssessmentSkills)
	before := *a

	_, err := NewLLMEnricher(model, 0.7).Enrich(context.Background(), domain.EnrichmentSkills, a)
	require.NoError(t, err)
	assert.Equal(t, before.Status, a.Status)
	assert.Nil(t, a.Results)
	assert.Len(t, a.Responses, 1)
}

func TestNewModel(t *testing.T) {
	m, err := NewModel(config.LLMConfig{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = NewModel(config.LLMConfig{Provider: "ollama", Model: "qwen3:0.6b", ServerURL: "http://localhost:11434"})
	require.NoError(t, err)
	assert.NotNil(t, m)

	_, err = NewModel(config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini"})
	assert.Error(t, err)

	_, err = NewModel(config.LLMConfig{Provider: "gemini"})
	assert.Error(t, err)
}
