package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"career-guide/internal/domain"
	"career-guide/internal/repository/models"
	"career-guide/internal/util"

	"github.com/jmoiron/sqlx"
)

const assessmentColumns = `ID, USER_ID, ASSESSMENT_TYPE, TITLE, DESCRIPTION, TOTAL_QUESTIONS, TIME_LIMIT, DIFFICULTY,
	QUESTIONS, RESPONSES, STATUS, STARTED_AT, COMPLETED_AT, TIME_SPENT, RESULTS, VERSION, CREATED_AT, UPDATED_AT`

const (
	insertAssessmentQuery = `INSERT INTO assessments (` + assessmentColumns + `)
	VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14, :15, :16, :17, :18)`

	selectAssessmentByIDQuery = `SELECT ` + assessmentColumns + ` FROM assessments WHERE ID = :1`

	// Only lifecycle fields change after creation; questions are immutable.
	updateAssessmentQuery = `UPDATE assessments SET
	STATUS = :1, STARTED_AT = :2, COMPLETED_AT = :3, TIME_SPENT = :4,
	RESPONSES = :5, RESULTS = :6, UPDATED_AT = :7, VERSION = VERSION + 1
	WHERE ID = :8 AND VERSION = :9`

	assessmentExistsQuery = `SELECT COUNT(*) FROM assessments WHERE ID = :1`
)

// sqlxAssessmentRepository implements domain.AssessmentRepository using sqlx.
type sqlxAssessmentRepository struct {
	db DBTX
}

// NewSQLXAssessmentRepository creates a new instance of sqlxAssessmentRepository.
func NewSQLXAssessmentRepository(db *sqlx.DB) domain.AssessmentRepository {
	return &sqlxAssessmentRepository{db: db}
}

func toDomainAssessment(m *models.Assessment) *domain.Assessment {
	a := &domain.Assessment{
		ID:             m.ID,
		UserID:         m.UserID,
		Type:           domain.AssessmentType(m.AssessmentType),
		Title:          m.Title,
		Description:    m.Description.String,
		TotalQuestions: m.TotalQuestions,
		Difficulty:     domain.Difficulty(m.Difficulty),
		Questions:      m.Questions.Data,
		Responses:      m.Responses.Data,
		Status:         domain.Status(m.Status),
		TimeSpent:      m.TimeSpent,
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.TimeLimit.Valid {
		limit := int(m.TimeLimit.Int64)
		a.TimeLimit = &limit
	}
	if m.StartedAt.Valid {
		t := m.StartedAt.Time
		a.StartedAt = &t
	}
	if m.CompletedAt.Valid {
		t := m.CompletedAt.Time
		a.CompletedAt = &t
	}
	if m.Results.Valid {
		a.Results = m.Results.Data
	}
	if a.Questions == nil {
		a.Questions = []domain.Question{}
	}
	if a.Responses == nil {
		a.Responses = []domain.Response{}
	}
	return a
}

func fromDomainAssessment(a *domain.Assessment) *models.Assessment {
	m := &models.Assessment{
		ID:             a.ID,
		UserID:         a.UserID,
		AssessmentType: string(a.Type),
		Title:          a.Title,
		Description:    util.StringToNullString(a.Description),
		TotalQuestions: a.TotalQuestions,
		Difficulty:     string(a.Difficulty),
		Questions:      models.NewJSON(a.Questions),
		Responses:      models.NewJSON(a.Responses),
		Status:         string(a.Status),
		StartedAt:      util.TimePtrToNullTime(a.StartedAt),
		CompletedAt:    util.TimePtrToNullTime(a.CompletedAt),
		TimeSpent:      a.TimeSpent,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
	if m.Responses.Data == nil {
		m.Responses.Data = []domain.Response{}
	}
	if a.TimeLimit != nil {
		m.TimeLimit = sql.NullInt64{Int64: int64(*a.TimeLimit), Valid: true}
	}
	if a.Results != nil {
		m.Results = models.NewJSON(a.Results)
	}
	return m
}

// clobArgs converts JSON columns to strings for Oracle CLOB binding.
func clobArgs(cols ...driver.Valuer) ([]interface{}, error) {
	out := make([]interface{}, 0, len(cols))
	for _, c := range cols {
		v, err := c.Value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Create inserts a new assessment. Version starts at 1.
func (r *sqlxAssessmentRepository) Create(ctx context.Context, a *domain.Assessment) error {
	if a.Version == 0 {
		a.Version = 1
	}
	m := fromDomainAssessment(a)

	clobs, err := clobArgs(m.Questions, m.Responses, m.Results)
	if err != nil {
		return domain.NewInternalError("failed to encode assessment", err)
	}

	_, err = GetExecutor(ctx, r.db).ExecContext(ctx, insertAssessmentQuery,
		m.ID,
		m.UserID,
		m.AssessmentType,
		m.Title,
		m.Description,
		m.TotalQuestions,
		m.TimeLimit,
		m.Difficulty,
		clobs[0],
		clobs[1],
		m.Status,
		m.StartedAt,
		m.CompletedAt,
		m.TimeSpent,
		clobs[2],
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return domain.NewInternalError("failed to create assessment", err)
	}
	return nil
}

// GetByID retrieves an assessment by its ID.
func (r *sqlxAssessmentRepository) GetByID(ctx context.Context, id string) (*domain.Assessment, error) {
	var m models.Assessment
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, selectAssessmentByIDQuery, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewAssessmentNotFoundError(id)
		}
		return nil, domain.NewInternalError("failed to get assessment", err)
	}
	return toDomainAssessment(&m), nil
}

// buildUserFilter returns the WHERE clause and args for a user's
// assessments, with bind positions starting at :1.
func buildUserFilter(userID string, filter domain.AssessmentFilter) (string, []interface{}) {
	conds := []string{"USER_ID = :1"}
	args := []interface{}{userID}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("STATUS = :%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		conds = append(conds, fmt.Sprintf("ASSESSMENT_TYPE = :%d", len(args)))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListByUser returns one page of a user's assessments, newest first.
func (r *sqlxAssessmentRepository) ListByUser(ctx context.Context, userID string, filter domain.AssessmentFilter, page domain.Page) ([]*domain.Assessment, error) {
	where, args := buildUserFilter(userID, filter)
	query := `SELECT ` + assessmentColumns + ` FROM assessments` + where +
		fmt.Sprintf(" ORDER BY CREATED_AT DESC, ID DESC OFFSET :%d ROWS FETCH NEXT :%d ROWS ONLY", len(args)+1, len(args)+2)
	args = append(args, page.Offset, page.Limit)

	var rows []models.Assessment
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, domain.NewInternalError("failed to list assessments", err)
	}

	out := make([]*domain.Assessment, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainAssessment(&rows[i]))
	}
	return out, nil
}

// CountByUser counts a user's assessments matching filter.
func (r *sqlxAssessmentRepository) CountByUser(ctx context.Context, userID string, filter domain.AssessmentFilter) (int, error) {
	where, args := buildUserFilter(userID, filter)
	var total int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &total, `SELECT COUNT(*) FROM assessments`+where, args...); err != nil {
		return 0, domain.NewInternalError("failed to count assessments", err)
	}
	return total, nil
}

// Update writes the lifecycle fields of a guarded by its version.
func (r *sqlxAssessmentRepository) Update(ctx context.Context, a *domain.Assessment) error {
	m := fromDomainAssessment(a)
	clobs, err := clobArgs(m.Responses, m.Results)
	if err != nil {
		return domain.NewInternalError("failed to encode assessment", err)
	}

	exec := GetExecutor(ctx, r.db)
	result, err := exec.ExecContext(ctx, updateAssessmentQuery,
		m.Status,
		m.StartedAt,
		m.CompletedAt,
		m.TimeSpent,
		clobs[0],
		clobs[1],
		m.UpdatedAt,
		m.ID,
		m.Version,
	)
	if err != nil {
		return domain.NewInternalError("failed to update assessment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.NewInternalError("failed to get rows affected for assessment update", err)
	}
	if rowsAffected == 0 {
		var n int
		if err := exec.GetContext(ctx, &n, assessmentExistsQuery, a.ID); err != nil {
			return domain.NewInternalError("failed to check assessment", err)
		}
		if n == 0 {
			return domain.NewAssessmentNotFoundError(a.ID)
		}
		return domain.NewConcurrentModificationError(a.ID)
	}

	a.Version++
	return nil
}
