package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/services"
)

// InitTextGenerator builds the model client for the configured provider.
func InitTextGenerator(ctx context.Context, cfg *Config, log *zap.Logger) (services.TextGenerator, error) {
	switch cfg.LLM.Provider {
	case ProviderOpenAI:
		svc, err := services.NewOpenAIService(cfg.APIKey(), cfg.OpenAI.Model, cfg.Scoring.MaxAttempts, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize openai: %w", err)
		}
		log.Info("text generator ready", zap.String("provider", ProviderOpenAI), zap.String("model", svc.Model()))
		return svc, nil
	case ProviderGemini:
		svc, err := services.NewGeminiService(ctx, cfg.APIKey(), cfg.Gemini.Model, cfg.Scoring.MaxAttempts, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini: %w", err)
		}
		log.Info("text generator ready", zap.String("provider", ProviderGemini), zap.String("model", svc.Model()))
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}
