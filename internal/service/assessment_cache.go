package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"career-guide/internal/cache"
	"career-guide/internal/domain"
	"career-guide/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// AssessmentCache is a read-through cache for assessment details and user
// profiles. Cache errors are logged and never fail the request; a nil
// *AssessmentCache or nil backend reads straight from the loader.
type AssessmentCache struct {
	backend    domain.Cache
	ttl        time.Duration
	profileTTL time.Duration
	group      singleflight.Group
}

// NewAssessmentCache creates a new instance of AssessmentCache.
func NewAssessmentCache(backend domain.Cache, ttl, profileTTL time.Duration) *AssessmentCache {
	if backend == nil {
		logger.Get().Warn("AssessmentCache initialized with nil cache. Reads go straight to the repository.")
	}
	return &AssessmentCache{backend: backend, ttl: ttl, profileTTL: profileTTL}
}

func (c *AssessmentCache) enabled() bool {
	return c != nil && c.backend != nil
}

// get returns the assessment from the cache or loads it once for all
// concurrent callers asking for the same id.
func (c *AssessmentCache) get(ctx context.Context, id string, load func(context.Context, string) (*domain.Assessment, error)) (*domain.Assessment, error) {
	if !c.enabled() {
		return load(ctx, id)
	}
	key := cache.AssessmentDetailKey(id)
	var a domain.Assessment
	if c.read(ctx, key, &a) {
		return &a, nil
	}

	res, err, _ := c.group.Do(key, func() (interface{}, error) {
		loaded, err := load(ctx, id)
		if err != nil {
			return nil, err
		}
		c.write(ctx, key, loaded, c.ttl)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	loaded, ok := res.(*domain.Assessment)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected type from singleflight.Do for assessment: %T", res), nil)
	}
	// Each caller gets its own copy; the shared value stays untouched.
	cp := *loaded
	return &cp, nil
}

func (c *AssessmentCache) getProfile(ctx context.Context, userID string, load func(context.Context, string) (*domain.PsychometricProfile, error)) (*domain.PsychometricProfile, error) {
	if !c.enabled() {
		return load(ctx, userID)
	}
	key := cache.PsychometricProfileKey(userID)
	var p domain.PsychometricProfile
	if c.read(ctx, key, &p) {
		return &p, nil
	}
	loaded, err := load(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.write(ctx, key, loaded, c.profileTTL)
	return loaded, nil
}

func (c *AssessmentCache) invalidate(ctx context.Context, assessmentID string) {
	c.delete(ctx, cache.AssessmentDetailKey(assessmentID))
}

func (c *AssessmentCache) invalidateProfile(ctx context.Context, userID string) {
	c.delete(ctx, cache.PsychometricProfileKey(userID))
}

func (c *AssessmentCache) read(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Failed to read from cache", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		logger.Get().Warn("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false
	}
	logger.Get().Debug("Cache hit", zap.String("key", key))
	return true
}

func (c *AssessmentCache) write(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Get().Warn("Failed to marshal value for caching", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.backend.Set(ctx, key, string(data), ttl); err != nil {
		logger.Get().Warn("Failed to write to cache", zap.String("key", key), zap.Error(err))
	}
}

func (c *AssessmentCache) delete(ctx context.Context, key string) {
	if !c.enabled() {
		return
	}
	if err := c.backend.Delete(ctx, key); err != nil {
		logger.Get().Warn("Failed to invalidate cache", zap.String("key", key), zap.Error(err))
	}
}
