package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

const defaultOpenAIModel = "gpt-4o-mini"

var ErrOpenAIKeyNotSet = errors.New("openai api key is required")

type OpenAIService struct {
	client      openai.Client
	model       string
	temperature float64
	maxAttempts int
	log         *zap.Logger
}

func NewOpenAIService(apiKey, model string, maxAttempts int, log *zap.Logger, opts ...option.RequestOption) (*OpenAIService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrOpenAIKeyNotSet
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultOpenAIModel
	}

	// retries are handled by generateWithRetry
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)

	return &OpenAIService{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: 0.3,
		maxAttempts: maxAttempts,
		log:         log,
	}, nil
}

// GenerateText implements TextGenerator.
func (o *OpenAIService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return generateWithRetry(ctx, o.log, o.maxAttempts, func(ctx context.Context) (string, error) {
		return o.generate(ctx, prompt)
	})
}

func (o *OpenAIService) generate(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(o.temperature),
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == 429 {
			return "", fmt.Errorf("openai rate limit exceeded: %w", err)
		}
		return "", fmt.Errorf("openai api call failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("openai api returned empty response")
	}

	o.log.Debug("openai response received",
		zap.String("model", string(completion.Model)),
		zap.Int64("tokens", completion.Usage.TotalTokens),
	)

	return content, nil
}

func (o *OpenAIService) Model() string {
	return o.model
}
