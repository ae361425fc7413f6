package domain

import (
	"context"
	"time"
)

// AssessmentFilter narrows a per-user assessment listing.
type AssessmentFilter struct {
	Status Status
	Type   AssessmentType
}

// Page is a limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// AssessmentRepository persists whole assessments.
type AssessmentRepository interface {
	Create(ctx context.Context, a *Assessment) error
	// GetByID returns ErrAssessmentNotFound when no row matches.
	GetByID(ctx context.Context, id string) (*Assessment, error)
	ListByUser(ctx context.Context, userID string, filter AssessmentFilter, page Page) ([]*Assessment, error)
	CountByUser(ctx context.Context, userID string, filter AssessmentFilter) (int, error)
	// Update writes a only if the stored version equals a.Version, then
	// increments a.Version. A stale version yields ErrConcurrentModification.
	Update(ctx context.Context, a *Assessment) error
}

// UserProfileRepository stores the psychometric profile derived from the
// latest completed psychometric assessment.
type UserProfileRepository interface {
	UpsertPsychometricProfile(ctx context.Context, p *PsychometricProfile) error
	// GetPsychometricProfile returns ErrNotFound when the user has none.
	GetPsychometricProfile(ctx context.Context, userID string) (*PsychometricProfile, error)
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Enricher produces the narrative part of completed results. Implementations
// must treat the assessment as read-only.
type Enricher interface {
	Enrich(ctx context.Context, kind EnrichmentKind, a *Assessment) (*Enrichment, error)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reports the wall clock in UTC.
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })
