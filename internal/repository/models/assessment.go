package models

import (
	"database/sql"
	"time"

	"career-guide/internal/domain"
)

// Assessment is a row of the ASSESSMENTS table. Questions, responses and
// results are JSON documents in CLOB columns.
type Assessment struct {
	ID             string                  `db:"ID"`
	UserID         string                  `db:"USER_ID"`
	AssessmentType string                  `db:"ASSESSMENT_TYPE"`
	Title          string                  `db:"TITLE"`
	Description    sql.NullString          `db:"DESCRIPTION"`
	TotalQuestions int                     `db:"TOTAL_QUESTIONS"`
	TimeLimit      sql.NullInt64           `db:"TIME_LIMIT"`
	Difficulty     string                  `db:"DIFFICULTY"`
	Questions      JSON[[]domain.Question] `db:"QUESTIONS"`
	Responses      JSON[[]domain.Response] `db:"RESPONSES"`
	Status         string                  `db:"STATUS"`
	StartedAt      sql.NullTime            `db:"STARTED_AT"`
	CompletedAt    sql.NullTime            `db:"COMPLETED_AT"`
	TimeSpent      int                     `db:"TIME_SPENT"`
	Results        JSON[*domain.Results]   `db:"RESULTS"`
	Version        int                     `db:"VERSION"`
	CreatedAt      time.Time               `db:"CREATED_AT"`
	UpdatedAt      time.Time               `db:"UPDATED_AT"`
}

// PsychometricProfile is a row of the USER_PSYCHOMETRIC_PROFILES table.
type PsychometricProfile struct {
	UserID              string                          `db:"USER_ID"`
	AssessmentID        string                          `db:"ASSESSMENT_ID"`
	PersonalityType     sql.NullString                  `db:"PERSONALITY_TYPE"`
	CognitiveAbilities  JSON[domain.CognitiveAbilities] `db:"COGNITIVE_ABILITIES"`
	LearningStyle       sql.NullString                  `db:"LEARNING_STYLE"`
	WorkStyle           sql.NullString                  `db:"WORK_STYLE"`
	Interests           StringSlice                     `db:"INTERESTS"`
	Strengths           StringSlice                     `db:"STRENGTHS"`
	AreasForImprovement StringSlice                     `db:"AREAS_FOR_IMPROVEMENT"`
	AssessedAt          time.Time                       `db:"ASSESSED_AT"`
	UpdatedAt           time.Time                       `db:"UPDATED_AT"`
}
