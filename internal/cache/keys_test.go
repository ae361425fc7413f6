package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "assessment",
			objectType:  "detail",
			identifier:  "123",
			paramsKey:   nil,
			expectedKey: "careerguide:assessment:detail:123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "assessment",
			objectType:  "detail",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "careerguide:assessment:detail:123",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "assessment",
			objectType:  "list",
			identifier:  "user1",
			paramsKey:   []string{"skills", "draft"},
			expectedKey: "careerguide:assessment:list:user1:skills_draft",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}

func TestNamedKeys(t *testing.T) {
	if got := AssessmentDetailKey("01HQ"); got != "careerguide:assessment:detail:01HQ" {
		t.Errorf("AssessmentDetailKey() = %v", got)
	}
	if got := PsychometricProfileKey("u1"); got != "careerguide:user:psychometric_profile:u1" {
		t.Errorf("PsychometricProfileKey() = %v", got)
	}
}
