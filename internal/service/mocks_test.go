package service

import (
	"context"
	"time"

	"career-guide/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockAssessmentRepository ---
type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Create(ctx context.Context, a *domain.Assessment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssessmentRepository) GetByID(ctx context.Context, id string) (*domain.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) ListByUser(ctx context.Context, userID string, filter domain.AssessmentFilter, page domain.Page) ([]*domain.Assessment, error) {
	args := m.Called(ctx, userID, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) CountByUser(ctx context.Context, userID string, filter domain.AssessmentFilter) (int, error) {
	args := m.Called(ctx, userID, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockAssessmentRepository) Update(ctx context.Context, a *domain.Assessment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// --- MockUserProfileRepository ---
type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) UpsertPsychometricProfile(ctx context.Context, p *domain.PsychometricProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockUserProfileRepository) GetPsychometricProfile(ctx context.Context, userID string) (*domain.PsychometricProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PsychometricProfile), args.Error(1)
}

// --- MockTransactionManager ---
// MockTransactionManager runs fn directly and counts calls.
type MockTransactionManager struct {
	calls int
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// --- MockEnricher ---
type MockEnricher struct {
	mock.Mock
}

func (m *MockEnricher) Enrich(ctx context.Context, kind domain.EnrichmentKind, a *domain.Assessment) (*domain.Enrichment, error) {
	args := m.Called(ctx, kind, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrichment), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
