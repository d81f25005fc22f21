package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// contentModel is the part of *genai.Models the service uses.
type contentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiService struct {
	models      contentModel
	modelName   string
	temperature float32
	maxAttempts int
	log         *zap.Logger
}

func NewGeminiService(ctx context.Context, apiKey, model string, maxAttempts int, log *zap.Logger) (*GeminiService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}

	return &GeminiService{
		models:      client.Models,
		modelName:   model,
		temperature: 0.3,
		maxAttempts: maxAttempts,
		log:         log,
	}, nil
}

// GenerateText implements TextGenerator.
func (g *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return generateWithRetry(ctx, g.log, g.maxAttempts, func(ctx context.Context) (string, error) {
		return g.generate(ctx, prompt)
	})
}

func (g *GeminiService) generate(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 2048,
	}

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
		// only the first candidate with text is used
		if builder.Len() > 0 {
			break
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	g.log.Debug("gemini response received",
		zap.String("model", g.modelName),
		zap.Int("response_length", len(output)),
	)

	return output, nil
}

func (g *GeminiService) Model() string {
	return g.modelName
}
