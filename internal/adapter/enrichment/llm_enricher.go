package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"career-guide/internal/config"
	"career-guide/internal/domain"
	"career-guide/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const maxResponseTokens = 1500

// llmEnricher implements domain.Enricher on top of a langchaingo model.
type llmEnricher struct {
	model       llms.Model
	temperature float64
}

// NewLLMEnricher creates an enricher that prompts model once per call.
func NewLLMEnricher(model llms.Model, temperature float64) domain.Enricher {
	return &llmEnricher{model: model, temperature: temperature}
}

// NewModel builds the langchaingo client selected by cfg. It returns a nil
// model when AI enrichment is disabled.
func NewModel(cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "ollama":
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.ServerURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
		}
		llm, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return llm, nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, errors.New("llm.api_key is required for openai")
		}
		opts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model)}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return llm, nil
	}
	return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
}

// Enrich asks the model for the narrative part of a's results. Any failure is
// returned as an LLM_SERVICE_ERROR; the caller decides on a fallback.
func (e *llmEnricher) Enrich(ctx context.Context, kind domain.EnrichmentKind, a *domain.Assessment) (*domain.Enrichment, error) {
	l := logger.Get()

	results := a.Score()
	if a.Results != nil {
		results = *a.Results
	}
	prompt, err := buildPrompt(kind, a, results)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	raw, err := llms.GenerateFromSinglePrompt(ctx, e.model, prompt,
		llms.WithTemperature(e.temperature),
		llms.WithMaxTokens(maxResponseTokens),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Warn("LLM request timed out", zap.String("assessment_id", a.ID), zap.Error(err))
			return nil, domain.NewLLMServiceError(fmt.Errorf("LLM request timed out: %w", err))
		}
		l.Error("Failed to get response from LLM", zap.String("assessment_id", a.ID), zap.Error(err))
		return nil, domain.NewLLMServiceError(fmt.Errorf("LLM call failed: %w", err))
	}
	l.Debug("Raw LLM response received", zap.String("assessment_id", a.ID), zap.String("raw_response", raw))

	body, err := extractJSON(raw)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}
	enrichment, err := decode(kind, body)
	if err != nil {
		l.Warn("Failed to unmarshal LLM enrichment", zap.String("assessment_id", a.ID), zap.String("json", string(body)), zap.Error(err))
		return nil, domain.NewLLMServiceError(err)
	}
	enrichment.Normalize()
	return enrichment, nil
}

// extractJSON strips reasoning blocks and returns the outermost JSON object.
func extractJSON(raw string) ([]byte, error) {
	cleaned := strings.TrimSpace(raw)
	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd > thinkStart {
			cleaned = strings.TrimSpace(cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):])
		}
	}
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found in LLM response")
	}
	return []byte(cleaned[start : end+1]), nil
}

func decode(kind domain.EnrichmentKind, body []byte) (*domain.Enrichment, error) {
	out := &domain.Enrichment{Kind: kind}
	var err error
	switch kind {
	case domain.EnrichmentPsychometric:
		out.Psychometric = &domain.PsychometricEnrichment{}
		err = json.Unmarshal(body, out.Psychometric)
	case domain.EnrichmentSkills:
		out.Skills = &domain.SkillsEnrichment{}
		err = json.Unmarshal(body, out.Skills)
		if err == nil && out.Skills.SkillScores == nil {
			out.Skills.SkillScores = map[string]float64{}
		}
	case domain.EnrichmentCareerInterest:
		out.CareerInterest = &domain.CareerInterestEnrichment{}
		err = json.Unmarshal(body, out.CareerInterest)
		if err == nil && out.CareerInterest.CareerInterests == nil {
			out.CareerInterest.CareerInterests = []domain.CareerInterest{}
		}
	default:
		return nil, fmt.Errorf("unknown enrichment kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON from LLM: %w", err)
	}
	return out, nil
}
