package janitor

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper discards expired state and reports how many items it removed.
type Sweeper interface {
	Sweep() int
}

// Scheduler runs a Sweeper on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	logger  *slog.Logger
}

// New builds a scheduler; schedule accepts standard cron expressions and descriptors such as "@every 1m".
func New(schedule string, sweeper Sweeper, logger *slog.Logger) (*Scheduler, error) {
	if sweeper == nil {
		return nil, errors.New("sweeper is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		sweeper: sweeper,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.RunOnce); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", schedule, err)
	}
	return s, nil
}

// RunOnce performs a single sweep.
func (s *Scheduler) RunOnce() {
	if removed := s.sweeper.Sweep(); removed > 0 {
		s.logger.Info("expired sessions swept", slog.Int("removed", removed))
	}
}

// Start begins running the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("session sweeper started", slog.Int("entries", len(s.cron.Entries())))
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("session sweeper stopped")
}
