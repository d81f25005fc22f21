package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/repositories"
)

// Sweeper removes sessions, reports and uploads older than the retention
// window. Sweeps run on a ticker and whenever Trigger is called; both are
// best effort.
type Sweeper interface {
	Start(ctx context.Context)
	Stop()
	Trigger()
	SweepNow(ctx context.Context)
}

type sweeper struct {
	sessions  repositories.SessionRepository
	storage   StorageService
	retention time.Duration
	interval  time.Duration
	log       *zap.Logger
	now       func() time.Time

	trigger  chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewSweeper(
	sessions repositories.SessionRepository,
	storage StorageService,
	retention time.Duration,
	interval time.Duration,
	log *zap.Logger,
) Sweeper {
	return &sweeper{
		sessions:  sessions,
		storage:   storage,
		retention: retention,
		interval:  interval,
		log:       log,
		now:       time.Now,
		trigger:   make(chan struct{}, 1),
		stopChan:  make(chan struct{}),
	}
}

// Start implements Sweeper.
func (s *sweeper) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.loop(ctx)
	s.log.Info("sweeper started",
		zap.Duration("retention", s.retention),
		zap.Duration("interval", s.interval),
	)
}

// Stop implements Sweeper.
func (s *sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	s.log.Info("sweeper stopped")
}

// Trigger implements Sweeper. It never blocks; a pending trigger absorbs
// further ones.
func (s *sweeper) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// SweepNow implements Sweeper.
func (s *sweeper) SweepNow(ctx context.Context) {
	now := s.now()

	sessions, err := s.sessions.SweepExpired(ctx, now)
	if err != nil {
		s.log.Warn("failed to sweep sessions", zap.Error(err))
	}

	files, err := s.storage.SweepOlderThan(now.Add(-s.retention))
	if err != nil {
		s.log.Warn("failed to sweep files", zap.Error(err))
	}

	if sessions > 0 || files > 0 {
		s.log.Info("expired data removed",
			zap.Int("sessions", sessions),
			zap.Int("files", files),
		)
	}
}

func (s *sweeper) loop(ctx context.Context) {
	defer s.wg.Done()

	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-tick:
			s.SweepNow(ctx)
		case <-s.trigger:
			s.SweepNow(ctx)
		}
	}
}
