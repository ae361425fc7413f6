package domain

import (
	"math"
	"strings"
)

// EnrichmentKind selects the enrichment shape joined into results.
type EnrichmentKind string

const (
	EnrichmentPsychometric   EnrichmentKind = "psychometric"
	EnrichmentSkills         EnrichmentKind = "skills"
	EnrichmentCareerInterest EnrichmentKind = "career_interest"
)

// EnrichmentKindFor maps an assessment type to its enrichment kind. Aptitude
// and personality assessments carry no enrichment.
func EnrichmentKindFor(t AssessmentType) (EnrichmentKind, bool) {
	switch t {
	case AssessmentPsychometric, AssessmentComprehensive:
		return EnrichmentPsychometric, true
	case AssessmentSkills:
		return EnrichmentSkills, true
	case AssessmentCareerInterest:
		return EnrichmentCareerInterest, true
	}
	return "", false
}

type RecommendationType string

const (
	RecommendationCareerPath       RecommendationType = "career_path"
	RecommendationSkillDevelopment RecommendationType = "skill_development"
	RecommendationCourse           RecommendationType = "course"
	RecommendationJobRole          RecommendationType = "job_role"
)

func (t RecommendationType) Valid() bool {
	switch t {
	case RecommendationCareerPath, RecommendationSkillDevelopment, RecommendationCourse, RecommendationJobRole:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Recommendation struct {
	Type        RecommendationType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Priority    Priority           `json:"priority"`
	Confidence  float64            `json:"confidence,omitempty"`
}

type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// PsychometricEnrichment is used for psychometric and comprehensive
// assessments. Scores are 0-100.
type PsychometricEnrichment struct {
	PersonalityType     string           `json:"personality_type"`
	CareerFit           float64          `json:"career_fit"`
	LearningStyle       string           `json:"learning_style"`
	WorkStyle           string           `json:"work_style"`
	CommunicationStyle  string           `json:"communication_style"`
	LeadershipPotential float64          `json:"leadership_potential"`
	RiskTolerance       RiskTolerance    `json:"risk_tolerance"`
	Strengths           []string         `json:"strengths"`
	AreasForImprovement []string         `json:"areas_for_improvement"`
	Recommendations     []Recommendation `json:"recommendations"`
}

type SkillsEnrichment struct {
	SkillScores     map[string]float64 `json:"skill_scores"`
	Recommendations []Recommendation   `json:"recommendations"`
}

type CareerInterest struct {
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
	Description string  `json:"description,omitempty"`
}

type CareerInterestEnrichment struct {
	CareerInterests []CareerInterest `json:"career_interests"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Enrichment is externally computed narrative content. Exactly one variant
// pointer is set, matching Kind.
type Enrichment struct {
	Kind           EnrichmentKind            `json:"kind"`
	Fallback       bool                      `json:"fallback,omitempty"`
	Psychometric   *PsychometricEnrichment   `json:"psychometric,omitempty"`
	Skills         *SkillsEnrichment         `json:"skills,omitempty"`
	CareerInterest *CareerInterestEnrichment `json:"career_interest,omitempty"`
}

// Recommendations returns the recommendations of whichever variant is set.
func (e *Enrichment) Recommendations() []Recommendation {
	if e == nil {
		return nil
	}
	switch {
	case e.Psychometric != nil:
		return e.Psychometric.Recommendations
	case e.Skills != nil:
		return e.Skills.Recommendations
	case e.CareerInterest != nil:
		return e.CareerInterest.Recommendations
	}
	return nil
}

// Matches reports whether the populated variant agrees with Kind.
func (e *Enrichment) Matches(kind EnrichmentKind) bool {
	if e == nil || e.Kind != kind {
		return false
	}
	switch kind {
	case EnrichmentPsychometric:
		return e.Psychometric != nil && e.Skills == nil && e.CareerInterest == nil
	case EnrichmentSkills:
		return e.Skills != nil && e.Psychometric == nil && e.CareerInterest == nil
	case EnrichmentCareerInterest:
		return e.CareerInterest != nil && e.Psychometric == nil && e.Skills == nil
	}
	return false
}

// Normalize clamps scores to 0-100, lowercases enum values, defaults
// recommendation priority to medium and drops recommendations with an
// unknown type or no title.
func (e *Enrichment) Normalize() {
	if e == nil {
		return
	}
	switch {
	case e.Psychometric != nil:
		p := e.Psychometric
		p.CareerFit = clampPercent(p.CareerFit)
		p.LeadershipPotential = clampPercent(p.LeadershipPotential)
		p.RiskTolerance = RiskTolerance(strings.ToLower(string(p.RiskTolerance)))
		switch p.RiskTolerance {
		case RiskLow, RiskMedium, RiskHigh:
		default:
			p.RiskTolerance = RiskMedium
		}
		p.Recommendations = normalizeRecommendations(p.Recommendations)
	case e.Skills != nil:
		for k, v := range e.Skills.SkillScores {
			e.Skills.SkillScores[k] = clampPercent(v)
		}
		e.Skills.Recommendations = normalizeRecommendations(e.Skills.Recommendations)
	case e.CareerInterest != nil:
		interests := e.CareerInterest.CareerInterests[:0]
		for _, ci := range e.CareerInterest.CareerInterests {
			if ci.Category == "" {
				continue
			}
			ci.Score = clampPercent(ci.Score)
			interests = append(interests, ci)
		}
		e.CareerInterest.CareerInterests = interests
		e.CareerInterest.Recommendations = normalizeRecommendations(e.CareerInterest.Recommendations)
	}
}

func normalizeRecommendations(recs []Recommendation) []Recommendation {
	out := make([]Recommendation, 0, len(recs))
	for _, r := range recs {
		if !r.Type.Valid() || r.Title == "" {
			continue
		}
		r.Priority = Priority(strings.ToLower(string(r.Priority)))
		switch r.Priority {
		case PriorityHigh, PriorityMedium, PriorityLow:
		default:
			r.Priority = PriorityMedium
		}
		r.Confidence = clampPercent(r.Confidence)
		out = append(out, r)
	}
	return out
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(100, math.Max(0, v))
}

// FallbackEnrichment is the fixed neutral object used when the AI
// collaborator fails or returns unusable output.
func FallbackEnrichment(kind EnrichmentKind, percentage int) *Enrichment {
	e := &Enrichment{Kind: kind, Fallback: true}
	switch kind {
	case EnrichmentPsychometric:
		e.Psychometric = &PsychometricEnrichment{
			PersonalityType:     "Unknown",
			CareerFit:           float64(percentage),
			LearningStyle:       "Mixed",
			WorkStyle:           "Adaptive",
			CommunicationStyle:  "Balanced",
			LeadershipPotential: 50,
			RiskTolerance:       RiskMedium,
			Strengths:           []string{"Analytical thinking", "Problem solving", "Adaptability"},
			AreasForImprovement: []string{"Communication", "Time management", "Leadership"},
			Recommendations:     []Recommendation{},
		}
	case EnrichmentSkills:
		e.Skills = &SkillsEnrichment{
			SkillScores:     map[string]float64{},
			Recommendations: []Recommendation{},
		}
	case EnrichmentCareerInterest:
		e.CareerInterest = &CareerInterestEnrichment{
			CareerInterests: []CareerInterest{},
			Recommendations: []Recommendation{},
		}
	}
	return e
}
