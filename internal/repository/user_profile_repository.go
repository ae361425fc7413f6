package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"career-guide/internal/domain"
	"career-guide/internal/repository/models"
	"career-guide/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	upsertProfileQuery = `MERGE INTO user_psychometric_profiles p
	USING (SELECT :1 AS USER_ID FROM dual) src
	ON (p.USER_ID = src.USER_ID)
	WHEN MATCHED THEN UPDATE SET
		ASSESSMENT_ID = :2, PERSONALITY_TYPE = :3, COGNITIVE_ABILITIES = :4, LEARNING_STYLE = :5,
		WORK_STYLE = :6, INTERESTS = :7, STRENGTHS = :8, AREAS_FOR_IMPROVEMENT = :9,
		ASSESSED_AT = :10, UPDATED_AT = :11
	WHEN NOT MATCHED THEN INSERT
		(USER_ID, ASSESSMENT_ID, PERSONALITY_TYPE, COGNITIVE_ABILITIES, LEARNING_STYLE,
		 WORK_STYLE, INTERESTS, STRENGTHS, AREAS_FOR_IMPROVEMENT, ASSESSED_AT, UPDATED_AT)
	VALUES (:12, :13, :14, :15, :16, :17, :18, :19, :20, :21, :22)`

	selectProfileQuery = `SELECT USER_ID, ASSESSMENT_ID, PERSONALITY_TYPE, COGNITIVE_ABILITIES, LEARNING_STYLE,
	WORK_STYLE, INTERESTS, STRENGTHS, AREAS_FOR_IMPROVEMENT, ASSESSED_AT, UPDATED_AT
	FROM user_psychometric_profiles WHERE USER_ID = :1`
)

// sqlxUserProfileRepository implements domain.UserProfileRepository using sqlx.
type sqlxUserProfileRepository struct {
	db DBTX
}

// NewSQLXUserProfileRepository creates a new instance of sqlxUserProfileRepository.
func NewSQLXUserProfileRepository(db *sqlx.DB) domain.UserProfileRepository {
	return &sqlxUserProfileRepository{db: db}
}

func toDomainProfile(m *models.PsychometricProfile) *domain.PsychometricProfile {
	return &domain.PsychometricProfile{
		UserID:              m.UserID,
		AssessmentID:        m.AssessmentID,
		PersonalityType:     m.PersonalityType.String,
		CognitiveAbilities:  m.CognitiveAbilities.Data,
		LearningStyle:       m.LearningStyle.String,
		WorkStyle:           m.WorkStyle.String,
		Interests:           m.Interests,
		Strengths:           m.Strengths,
		AreasForImprovement: m.AreasForImprovement,
		AssessedAt:          m.AssessedAt,
	}
}

// UpsertPsychometricProfile replaces the user's profile, creating it on
// first use.
func (r *sqlxUserProfileRepository) UpsertPsychometricProfile(ctx context.Context, p *domain.PsychometricProfile) error {
	updatedAt := time.Now().UTC()
	values, err := clobArgs(
		models.NewJSON(p.CognitiveAbilities),
		models.StringSlice(p.Interests),
		models.StringSlice(p.Strengths),
		models.StringSlice(p.AreasForImprovement),
	)
	if err != nil {
		return domain.NewInternalError("failed to encode psychometric profile", err)
	}
	personality := util.StringToNullString(p.PersonalityType)
	learning := util.StringToNullString(p.LearningStyle)
	work := util.StringToNullString(p.WorkStyle)

	// MERGE binds positionally, so the column values appear once per branch.
	_, err = GetExecutor(ctx, r.db).ExecContext(ctx, upsertProfileQuery,
		p.UserID,
		p.AssessmentID, personality, values[0], learning, work, values[1], values[2], values[3], p.AssessedAt, updatedAt,
		p.UserID, p.AssessmentID, personality, values[0], learning, work, values[1], values[2], values[3], p.AssessedAt, updatedAt,
	)
	if err != nil {
		return domain.NewInternalError("failed to upsert psychometric profile", err)
	}
	return nil
}

// GetPsychometricProfile retrieves the stored profile of a user.
func (r *sqlxUserProfileRepository) GetPsychometricProfile(ctx context.Context, userID string) (*domain.PsychometricProfile, error) {
	var m models.PsychometricProfile
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, selectProfileQuery, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("psychometric profile not found").WithContext("user_id", userID)
		}
		return nil, domain.NewInternalError("failed to get psychometric profile", err)
	}
	return toDomainProfile(&m), nil
}
