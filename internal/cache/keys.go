package cache

import "strings"

const (
	GlobalKeyPrefix = "careerguide"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// AssessmentDetailKey caches the full stored assessment.
func AssessmentDetailKey(assessmentID string) string {
	return GenerateCacheKey("assessment", "detail", assessmentID)
}

// PsychometricProfileKey caches a user's psychometric profile.
func PsychometricProfileKey(userID string) string {
	return GenerateCacheKey("user", "psychometric_profile", userID)
}
