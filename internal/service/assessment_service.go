package service

import (
	"context"
	"errors"
	"time"

	"career-guide/internal/domain"
	"career-guide/internal/dto"
	"career-guide/internal/logger"
	"career-guide/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultEnrichmentTimeout bounds a single enrichment call.
const DefaultEnrichmentTimeout = 20 * time.Second

// AssessmentService drives the assessment lifecycle on behalf of an
// authenticated caller. Every operation checks ownership first; admins may
// act on any assessment.
type AssessmentService interface {
	CreateAssessment(ctx context.Context, actor dto.Identity, req *dto.CreateAssessmentRequest) (*dto.AssessmentResponse, error)
	GetAssessment(ctx context.Context, actor dto.Identity, id string) (*dto.AssessmentResponse, error)
	ListAssessments(ctx context.Context, actor dto.Identity, q *dto.ListAssessmentsQuery) (*dto.AssessmentListResponse, error)
	StartAssessment(ctx context.Context, actor dto.Identity, id string) (*dto.AssessmentResponse, error)
	SubmitResponse(ctx context.Context, actor dto.Identity, id string, req *dto.SubmitResponseRequest) (*dto.AssessmentResponse, error)
	CompleteAssessment(ctx context.Context, actor dto.Identity, id string) (*dto.AssessmentResponse, error)
	AbandonAssessment(ctx context.Context, actor dto.Identity, id string) (*dto.AssessmentResponse, error)
}

// AssessmentServiceConfig carries the optional collaborators of the service.
type AssessmentServiceConfig struct {
	// Enricher may be nil, in which case fallbacks are always used.
	Enricher          domain.Enricher
	EnrichmentTimeout time.Duration
	Clock             domain.Clock
	NewID             func() string
}

type assessmentService struct {
	repo              domain.AssessmentRepository
	profileRepo       domain.UserProfileRepository
	tm                domain.TransactionManager
	cache             *AssessmentCache
	enricher          domain.Enricher
	enrichmentTimeout time.Duration
	clock             domain.Clock
	newID             func() string
}

// NewAssessmentService creates a new instance of AssessmentService.
func NewAssessmentService(
	repo domain.AssessmentRepository,
	profileRepo domain.UserProfileRepository,
	tm domain.TransactionManager,
	cache *AssessmentCache,
	cfg AssessmentServiceConfig,
) AssessmentService {
	s := &assessmentService{
		repo:              repo,
		profileRepo:       profileRepo,
		tm:                tm,
		cache:             cache,
		enricher:          cfg.Enricher,
		enrichmentTimeout: cfg.EnrichmentTimeout,
		clock:             cfg.Clock,
		newID:             cfg.NewID,
	}
	if s.enrichmentTimeout <= 0 {
		s.enrichmentTimeout = DefaultEnrichmentTimeout
	}
	if s.clock == nil {
		s.clock = domain.SystemClock
	}
	if s.newID == nil {
		s.newID = util.NewULID
	}
	return s
}

func (s *assessmentService) view(a *domain.Assessment, actor dto.Identity) *dto.AssessmentResponse {
	resp := dto.NewAssessmentResponse(a, s.clock.Now(), actor.IsAdmin())
	return &resp
}

func authorize(actor dto.Identity, a *domain.Assessment) error {
	if actor.IsAdmin() || a.UserID == actor.UserID {
		return nil
	}
	return domain.NewForbiddenError("assessment belongs to another user").WithContext("assessment_id", a.ID)
}

// loadForUpdate reads the stored assessment, bypassing the cache so the
// version used for the write is current.
func (s *assessmentService) loadForUpdate(ctx context.Context, actor dto.Identity, id string) (*domain.Assessment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assessmentService) save(ctx context.Context, a *domain.Assessment) error {
	if err := s.repo.Update(ctx, a); err != nil {
		if !errors.Is(err, domain.ErrConcurrentModification) {
			logger.Get().Error("Failed to update assessment", zap.String("assessment_id", a.ID), zap.Error(err))
		}
		return err
	}
	s.cache.invalidate(ctx, a.ID)
	return nil
}

// CreateAssessment stores a new draft. Only admins may set req.UserID.
func (s *assessmentService) CreateAssessment(ctx context.Context, actor dto.Identity, req *dto.CreateAssessmentRequest) (*dto.AssessmentResponse, error) {
	owner := actor.UserID
	if req.UserID != "" && req.UserID != actor.UserID {
		if !actor.IsAdmin() {
			return nil, domain.NewForbiddenError("only admins can create assessments for other users")
		}
		owner = req.UserID
	}

	a, err := domain.NewAssessment(s.newID(), req.ToParams(owner), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		logger.Get().Error("Failed to create assessment", zap.String("user_id", owner), zap.Error(err))
		return nil, err
	}

	logger.Get().Info("Assessment created",
		zap.String("assessment_id", a.ID),
		zap.String("user_id", owner),
		zap.String("type", string(a.Type)),
		zap.Int("total_questions", a.TotalQuestions))
	return s.view(a, actor), nil
}

func (s *assessmentService) GetAssessment(ctx context.Context, actor dto.Identity, id string) (*dto.AssessmentResponse, error) {
	a, err := s.cache.get(ctx, id, s.repo.GetByID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, a); err != nil {
		return nil, err
	}
	return s.view(a, actor), nil
}

// ListAssessments returns the caller's assessments, newest first. The page and
// the total count are read concurrently.
func (s *assessmentService) ListAssessments(ctx context.Context, actor dto.Identity, q *dto.ListAssessmentsQuery) (*dto.AssessmentListResponse, error) {
	filter := q.Filter()
	page := q.Page()

	var (
		items []*domain.Assessment
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.ListByUser(gctx, actor.UserID, filter, page)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.CountByUser(gctx, actor.UserID, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Get().Error("Failed to list assessments", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}

	summaries := make([]domain.Summary, 0, len(items))
	for _, a := range items {
		summaries = append(summaries, a.Summary())
	}
	return &dto.AssessmentListResponse{
		Items:      summaries,
		Pagination: dto.NewPaginationInfo(int64(total), page.Limit, page.Offset),
	}, nil
}

func (s *assessmentService) StartAssessment(ctx context.Context, actor dto.Identity, id string) (*dto.AssessmentResponse, error) {
	a, err := s.loadForUpdate(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := a.Start(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.save(ctx, a); err != nil {
		return nil, err
	}
	logger.Get().Info("Assessment started", zap.String("assessment_id", a.ID))
	return s.view(a, actor), nil
}

// SubmitResponse records one answer. When it is the last missing answer the
// assessment is completed and scored in the same call.
func (s *assessmentService) SubmitResponse(ctx context.Context, actor dto.Identity, id string, req *dto.SubmitResponseRequest) (*dto.AssessmentResponse, error) {
	a, err := s.loadForUpdate(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := a.AddResponse(req.QuestionID, req.Answer, req.TimeSpent, s.clock.Now()); err != nil {
		return nil, err
	}

	if a.IsComplete() {
		logger.Get().Info("All questions answered, completing assessment", zap.String("assessment_id", a.ID))
		if err := s.finish(ctx, a); err != nil {
			return nil, err
		}
		return s.view(a, actor), nil
	}
	if err := s.save(ctx, a); err != nil {
		return nil, err
	}
	return s.view(a, actor), nil
}

// CompleteAssessment is an idempotent confirmation for an assessment that is
// already completed.
func (s *assessmentService) CompleteAssessment(ctx context.Context, actor dto.Identity, id string) (*dto.AssessmentResponse, error) {
	a, err := s.loadForUpdate(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if a.Status == domain.StatusCompleted {
		return s.view(a, actor), nil
	}
	if err := s.finish(ctx, a); err != nil {
		return nil, err
	}
	return s.view(a, actor), nil
}

func (s *assessmentService) AbandonAssessment(ctx context.Context, actor dto.Identity, id string) (*dto.AssessmentResponse, error) {
	a, err := s.loadForUpdate(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := a.Abandon(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.save(ctx, a); err != nil {
		return nil, err
	}
	logger.Get().Info("Assessment abandoned", zap.String("assessment_id", a.ID))
	return s.view(a, actor), nil
}

// finish completes, scores and enriches a, then writes it together with the
// derived psychometric profile in one transaction. A failed profile upsert is
// logged and does not block the completion.
func (s *assessmentService) finish(ctx context.Context, a *domain.Assessment) error {
	if err := a.Complete(s.clock.Now()); err != nil {
		return err
	}
	results, err := a.CalculateScore()
	if err != nil {
		return err
	}
	if kind, ok := domain.EnrichmentKindFor(a.Type); ok {
		if err := a.AttachEnrichment(s.enrich(ctx, kind, a, results.Percentage)); err != nil {
			return err
		}
	}
	profile, hasProfile := domain.ProfileFromAssessment(a)

	err = s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, a); err != nil {
			return err
		}
		if !hasProfile {
			return nil
		}
		if err := s.profileRepo.UpsertPsychometricProfile(txCtx, profile); err != nil {
			logger.Get().Warn("Failed to update psychometric profile, completion kept",
				zap.String("assessment_id", a.ID), zap.String("user_id", a.UserID), zap.Error(err))
			hasProfile = false
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrConcurrentModification) {
			logger.Get().Error("Failed to persist completed assessment", zap.String("assessment_id", a.ID), zap.Error(err))
		}
		return err
	}

	s.cache.invalidate(ctx, a.ID)
	if hasProfile {
		s.cache.invalidateProfile(ctx, a.UserID)
	}
	logger.Get().Info("Assessment completed",
		zap.String("assessment_id", a.ID),
		zap.Int("percentage", results.Percentage),
		zap.String("grade", string(results.Grade)),
		zap.Int("time_spent", a.TimeSpent))
	return nil
}

// enrich never fails: any problem with the enricher yields the neutral
// fallback for kind.
func (s *assessmentService) enrich(ctx context.Context, kind domain.EnrichmentKind, a *domain.Assessment, percentage int) *domain.Enrichment {
	if s.enricher == nil {
		return domain.FallbackEnrichment(kind, percentage)
	}
	ectx, cancel := context.WithTimeout(ctx, s.enrichmentTimeout)
	defer cancel()

	e, err := s.enricher.Enrich(ectx, kind, a)
	if err != nil {
		logger.Get().Warn("AI enrichment failed, using fallback",
			zap.String("assessment_id", a.ID), zap.String("kind", string(kind)), zap.Error(err))
		return domain.FallbackEnrichment(kind, percentage)
	}
	if !e.Matches(kind) {
		logger.Get().Warn("AI enrichment has the wrong shape, using fallback",
			zap.String("assessment_id", a.ID), zap.String("kind", string(kind)))
		return domain.FallbackEnrichment(kind, percentage)
	}
	return e
}
