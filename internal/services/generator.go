package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// TextGenerator is the external model: prompt in, text out.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// generateWithRetry calls fn up to maxAttempts times and stops early when ctx
// is done.
func generateWithRetry(ctx context.Context, log *zap.Logger, maxAttempts int, fn func(ctx context.Context) (string, error)) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxAttempts {
			log.Warn("generation attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("context cancelled: %w", ctx.Err())
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}
	}

	if maxAttempts == 1 {
		return "", lastErr
	}
	return "", fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

var retryBackoff = 500 * time.Millisecond
