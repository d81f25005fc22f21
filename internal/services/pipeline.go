package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
)

type PipelineConfig struct {
	// Pace is the pause between consecutive model calls.
	Pace             time.Duration
	ReportDir        string
	ReportURLPrefix  string
	ResultsURLPrefix string
}

// Batch is one job description plus the uploaded files to rank against it.
// A zero ID is replaced by a fresh one when the run starts.
type Batch struct {
	ID             uuid.UUID
	JobDescription string
	Files          []models.UploadedFile
}

type PipelineOrchestrator struct {
	extractor TextExtractor
	scorer    ResumeScorer
	reports   ReportGenerator
	sessions  repositories.SessionRepository
	sweeper   Sweeper
	cfg       PipelineConfig
	log       *zap.Logger

	now   func() time.Time
	pause func(ctx context.Context, d time.Duration)
}

// NewPipelineOrchestrator wires the pipeline. sweeper may be nil.
func NewPipelineOrchestrator(
	extractor TextExtractor,
	scorer ResumeScorer,
	reports ReportGenerator,
	sessions repositories.SessionRepository,
	sweeper Sweeper,
	cfg PipelineConfig,
	log *zap.Logger,
) *PipelineOrchestrator {
	if cfg.ReportURLPrefix == "" {
		cfg.ReportURLPrefix = "/download/"
	}
	if cfg.ResultsURLPrefix == "" {
		cfg.ResultsURLPrefix = "/results/"
	}

	return &PipelineOrchestrator{
		extractor: extractor,
		scorer:    scorer,
		reports:   reports,
		sessions:  sessions,
		sweeper:   sweeper,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
		pause:     sleepContext,
	}
}

// BatchRun is a single execution of the pipeline. Its events can be consumed
// once; Wait drains them and returns the outcome.
type BatchRun struct {
	o       *PipelineOrchestrator
	ctx     context.Context
	batch   Batch
	started bool
	state   models.Stage
	session *models.Session
	err     error
}

// Start prepares a run. Nothing happens until its events are consumed.
func (o *PipelineOrchestrator) Start(ctx context.Context, batch Batch) *BatchRun {
	if batch.ID == uuid.Nil {
		batch.ID = uuid.New()
	}
	return &BatchRun{o: o, ctx: ctx, batch: batch, state: models.StageReceived}
}

func (r *BatchRun) ID() uuid.UUID {
	return r.batch.ID
}

func (r *BatchRun) State() models.Stage {
	return r.state
}

// Events returns the lazy, finite event sequence of the run. If the consumer
// stops early the run still finishes, without emitting further events. A
// second call yields nothing.
func (r *BatchRun) Events() iter.Seq[models.ProgressEvent] {
	return func(yield func(models.ProgressEvent) bool) {
		if r.started {
			return
		}
		r.started = true

		listening := true
		inYield := false
		emit := func(ev models.ProgressEvent) {
			if !listening {
				return
			}
			inYield = true
			listening = yield(ev)
			inYield = false
		}

		defer func() {
			if p := recover(); p != nil {
				// a panic in the consumer's loop body is not ours to handle
				if inYield {
					panic(p)
				}
				r.fail(emit, r.o.log, fmt.Errorf("pipeline panic: %v", p))
			}
		}()

		r.execute(emit)
	}
}

// Wait runs the batch to completion if needed and returns the persisted
// session, or the error that failed the batch.
func (r *BatchRun) Wait() (*models.Session, error) {
	for range r.Events() {
	}
	return r.session, r.err
}

func (r *BatchRun) execute(emit func(models.ProgressEvent)) {
	o := r.o
	log := o.log.With(zap.String("session_id", r.batch.ID.String()))

	files := r.batch.Files
	if len(files) == 0 {
		r.state = models.StageFailed
		r.err = models.ErrNoFilesSupplied
		log.Warn("batch rejected", zap.Error(r.err))
		emit(models.NewErrorEvent("No files uploaded"))
		return
	}

	total := len(files)
	log.Info("batch started", zap.Int("files", total))

	results := make([]models.ScoreResult, 0, total)
	for i, file := range files {
		r.state = models.StageExtracting
		doc := r.extract(file, log)

		r.state = models.StageScoring
		emit(models.NewProgressEvent(i, total, "Analyzing "+doc.Filename, models.StageScoring))

		if i > 0 && o.cfg.Pace > 0 {
			o.pause(r.ctx, o.cfg.Pace)
		}
		results = append(results, o.scorer.Score(r.ctx, r.batch.JobDescription, doc))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	r.state = models.StageReportGenerating
	reportName := fmt.Sprintf("ranked_resumes_%s.pdf", r.batch.ID)
	reportPath := filepath.Join(o.cfg.ReportDir, reportName)
	if err := o.reports.Generate(results, reportPath); err != nil {
		r.fail(emit, log, err)
		return
	}

	session := &models.Session{
		ID:             r.batch.ID,
		JobDescription: r.batch.JobDescription,
		Results:        results,
		ReportLink:     o.cfg.ReportURLPrefix + reportName,
		CreatedAt:      o.now().UTC(),
	}
	if err := o.sessions.Put(r.ctx, session); err != nil {
		if rmErr := os.Remove(reportPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.Warn("failed to remove orphaned report", zap.Error(rmErr))
		}
		r.fail(emit, log, err)
		return
	}

	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
		}
	}

	r.session = session
	r.state = models.StageComplete
	log.Info("batch completed",
		zap.Int("files", total),
		zap.Int("failed", failed),
		zap.String("report", reportName),
	)

	if o.sweeper != nil {
		o.sweeper.Trigger()
	}

	emit(models.NewCompleteEvent(o.cfg.ResultsURLPrefix + r.batch.ID.String()))
}

// extract never fails: extraction problems travel on the document.
func (r *BatchRun) extract(file models.UploadedFile, log *zap.Logger) *models.ResumeDocument {
	doc, err := r.o.extractor.Extract(file.Path)
	if err != nil {
		log.Warn("failed to extract resume", zap.String("filename", file.Name), zap.Error(err))
		return &models.ResumeDocument{
			Filename:        file.Name,
			SourcePath:      file.Path,
			ExtractionError: err.Error(),
		}
	}
	return doc
}

func (r *BatchRun) fail(emit func(models.ProgressEvent), log *zap.Logger, err error) {
	r.state = models.StageFailed
	r.err = err
	log.Error("batch failed", zap.Error(err))
	emit(models.NewErrorEvent(fmt.Sprintf("An error occurred: %v", err)))
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
