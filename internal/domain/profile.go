package domain

import "time"

// CognitiveAbilities are 0-100 scores.
type CognitiveAbilities struct {
	Analytical float64 `json:"analytical"`
	Creative   float64 `json:"creative"`
	Logical    float64 `json:"logical"`
	Verbal     float64 `json:"verbal"`
}

// PsychometricProfile is the user-level summary kept from the most recent
// completed psychometric or comprehensive assessment.
type PsychometricProfile struct {
	UserID              string             `json:"user_id"`
	AssessmentID        string             `json:"assessment_id"`
	PersonalityType     string             `json:"personality_type"`
	CognitiveAbilities  CognitiveAbilities `json:"cognitive_abilities"`
	LearningStyle       string             `json:"learning_style"`
	WorkStyle           string             `json:"work_style"`
	Interests           []string           `json:"interests"`
	Strengths           []string           `json:"strengths"`
	AreasForImprovement []string           `json:"areas_for_improvement"`
	AssessedAt          time.Time          `json:"assessed_at"`
}

// ProfileFromAssessment derives a profile from a completed assessment with a
// psychometric enrichment. ok is false for any other assessment.
func ProfileFromAssessment(a *Assessment) (p *PsychometricProfile, ok bool) {
	if a.Status != StatusCompleted || a.Results == nil || a.Results.Enrichment == nil {
		return nil, false
	}
	psy := a.Results.Enrichment.Psychometric
	if psy == nil {
		return nil, false
	}
	recs := a.Results.Enrichment.Recommendations()
	interests := make([]string, 0, len(recs))
	for _, r := range recs {
		interests = append(interests, r.Title)
	}
	assessedAt := a.UpdatedAt
	if a.CompletedAt != nil {
		assessedAt = *a.CompletedAt
	}
	return &PsychometricProfile{
		UserID:          a.UserID,
		AssessmentID:    a.ID,
		PersonalityType: psy.PersonalityType,
		CognitiveAbilities: CognitiveAbilities{
			Analytical: psy.CareerFit,
			Creative:   psy.LeadershipPotential,
			Logical:    psy.CareerFit,
			Verbal:     psy.CareerFit,
		},
		LearningStyle:       psy.LearningStyle,
		WorkStyle:           psy.WorkStyle,
		Interests:           interests,
		Strengths:           append([]string(nil), psy.Strengths...),
		AreasForImprovement: append([]string(nil), psy.AreasForImprovement...),
		AssessedAt:          assessedAt,
	}, true
}
