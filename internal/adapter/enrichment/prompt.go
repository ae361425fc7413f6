package enrichment

import (
	"fmt"
	"strings"

	"career-guide/internal/domain"
)

const recommendationFormat = `"recommendations": [
    {"type": "career_path|skill_development|course|job_role", "title": "string", "description": "string", "priority": "high|medium|low", "confidence": 0}
  ]`

const psychometricInstructions = `Please provide:
1. Personality type assessment (e.g., INTJ, ENFP)
2. Career fit score (0-100)
3. Learning style (Visual, Auditory, Kinesthetic, Reading/Writing)
4. Work style (Collaborative, Independent, Leadership)
5. Communication style (Direct, Diplomatic, Analytical)
6. Leadership potential (0-100)
7. Risk tolerance (low, medium, high)
8. Top 3 strengths
9. Top 3 areas for improvement
10. Career recommendations (3-5 specific roles)

Respond with ONLY a JSON object in the following format:
{
  "personality_type": "string",
  "career_fit": 0,
  "learning_style": "string",
  "work_style": "string",
  "communication_style": "string",
  "leadership_potential": 0,
  "risk_tolerance": "low|medium|high",
  "strengths": ["string", "string", "string"],
  "areas_for_improvement": ["string", "string", "string"],
  ` + recommendationFormat + `
}`

const skillsInstructions = `Provide skill scores (0-100) for the categories covered and recommendations for skill development.

Respond with ONLY a JSON object in the following format:
{
  "skill_scores": {"category": 0},
  ` + recommendationFormat + `
}`

const careerInterestInstructions = `Provide career interest categories with scores (0-100) and specific career recommendations.

Respond with ONLY a JSON object in the following format:
{
  "career_interests": [{"category": "string", "score": 0, "description": "string"}],
  ` + recommendationFormat + `
}`

func buildPrompt(kind domain.EnrichmentKind, a *domain.Assessment, results domain.Results) (string, error) {
	var intro, instructions string
	switch kind {
	case domain.EnrichmentPsychometric:
		intro, instructions = "Analyze the following psychometric assessment results and provide insights:", psychometricInstructions
	case domain.EnrichmentSkills:
		intro, instructions = "Analyze the following skills assessment results:", skillsInstructions
	case domain.EnrichmentCareerInterest:
		intro, instructions = "Analyze the following career interest assessment results:", careerInterestInstructions
	default:
		return "", fmt.Errorf("unknown enrichment kind %q", kind)
	}

	var b strings.Builder
	b.WriteString(intro)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Assessment Type: %s\n", a.Type)
	fmt.Fprintf(&b, "Total Score: %g\n", results.TotalScore)
	fmt.Fprintf(&b, "Percentage: %d%%\n", results.Percentage)
	if kind == domain.EnrichmentPsychometric {
		grade := string(results.Grade)
		if grade == "" {
			grade = "N/A"
		}
		fmt.Fprintf(&b, "Grade: %s\n", grade)
	}
	b.WriteString("\nQuestions and Responses:\n")
	for i, q := range a.Questions {
		answer := "No response"
		if resp, ok := a.Response(q.ID); ok {
			answer = resp.Answer.String()
		}
		category := q.Category
		if category == "" {
			category = "General"
		}
		fmt.Fprintf(&b, "Q%d: %s\nAnswer: %s\nCategory: %s\n\n", i+1, q.Prompt, answer, category)
	}
	b.WriteString(instructions)
	return b.String(), nil
}
