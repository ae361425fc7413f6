package service

import (
	"context"

	"career-guide/internal/domain"
	"career-guide/internal/dto"
)

// UserService defines the interface for user-related operations.
type UserService interface {
	GetPsychometricProfile(ctx context.Context, actor dto.Identity) (*dto.PsychometricProfileResponse, error)
}

type userServiceImpl struct {
	profileRepo domain.UserProfileRepository
	cache       *AssessmentCache
}

// NewUserService creates a new instance of UserService.
func NewUserService(profileRepo domain.UserProfileRepository, cache *AssessmentCache) UserService {
	return &userServiceImpl{profileRepo: profileRepo, cache: cache}
}

// GetPsychometricProfile returns the caller's profile, or NOT_FOUND when no
// psychometric assessment has been completed yet.
func (s *userServiceImpl) GetPsychometricProfile(ctx context.Context, actor dto.Identity) (*dto.PsychometricProfileResponse, error) {
	p, err := s.cache.getProfile(ctx, actor.UserID, s.profileRepo.GetPsychometricProfile)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPsychometricProfileResponse(p)
	return &resp, nil
}
