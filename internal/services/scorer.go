package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/models"
)

const (
	snippetLength   = 400
	noContentText   = "No content extracted"
	noContentReason = "No text content found"
)

// ResumeScorer scores one document against a job description. It never
// fails: problems are reported through ScoreResult.Error with a zero score.
type ResumeScorer interface {
	Score(ctx context.Context, jobDescription string, doc *models.ResumeDocument) models.ScoreResult
}

type resumeScorer struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	timeout       time.Duration
	log           *zap.Logger
}

func NewResumeScorer(generator TextGenerator, timeout time.Duration, log *zap.Logger) ResumeScorer {
	return &resumeScorer{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
		log:           log,
	}
}

// Score implements ResumeScorer.
func (s *resumeScorer) Score(ctx context.Context, jobDescription string, doc *models.ResumeDocument) models.ScoreResult {
	if doc.ExtractionError != "" {
		s.log.Warn("skipping resume that failed extraction",
			zap.String("filename", doc.Filename),
			zap.String("error", doc.ExtractionError),
		)
		return models.ScoreResult{
			Filename: doc.Filename,
			Snippet:  noContentText,
			Error:    doc.ExtractionError,
		}
	}

	if doc.Text == "" {
		s.log.Warn("no text content found", zap.String("filename", doc.Filename))
		return models.ScoreResult{
			Filename: doc.Filename,
			Snippet:  noContentText,
			Error:    noContentReason,
		}
	}

	prompt := s.promptBuilder.BuildResumeScoringPrompt(jobDescription, doc.Text)
	s.log.Debug("scoring resume",
		zap.String("filename", doc.Filename),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, 200)),
	)

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	feedback, err := s.generator.GenerateText(callCtx, prompt)
	if err != nil {
		s.log.Warn("failed to score resume", zap.String("filename", doc.Filename), zap.Error(err))
		return models.ScoreResult{
			Filename:    doc.Filename,
			Snippet:     Snippet(doc.Text),
			FullContent: doc.Text,
			Error:       fmt.Errorf("%w: %v", models.ErrScoringFailure, err).Error(),
		}
	}

	score := NormalizeScore(feedback)
	s.log.Debug("resume scored",
		zap.String("filename", doc.Filename),
		zap.Float64("score", score),
		zap.String("feedback_preview", logger.TruncateForLog(feedback, 200)),
	)

	return models.ScoreResult{
		Filename:    doc.Filename,
		Score:       score,
		Snippet:     Snippet(doc.Text),
		FullContent: doc.Text,
		Feedback:    feedback,
	}
}

// Snippet returns the first 400 characters of text, with an ellipsis when
// the text is longer.
func Snippet(text string) string {
	if utf8.RuneCountInString(text) <= snippetLength {
		return text
	}
	return string([]rune(text)[:snippetLength]) + "..."
}
