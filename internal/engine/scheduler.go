package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs full catalog refreshes on a fixed interval.
type Scheduler struct {
	cron      *cron.Cron
	refresher *Refresher
	log       *slog.Logger
}

// NewScheduler creates a Scheduler that runs a full refresh every interval.
func NewScheduler(
	r *Refresher,
	interval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", interval)
	}

	c := cron.New(cron.WithChain(cron.Recover(cronLogger{log})))

	s := &Scheduler{
		cron:      c,
		refresher: r,
		log:       log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.runRefresh); err != nil {
		return nil, fmt.Errorf("registering refresh job: %w", err)
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once any running
// refresh has finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runRefresh() {
	s.log.Info("scheduled refresh starting")
	_, err := s.refresher.RunAll(context.Background())
	switch {
	case errors.Is(err, ErrRefreshInProgress):
		s.log.Warn("scheduled refresh skipped, previous run still active")
	case err != nil:
		s.log.Error("scheduled refresh failed", "error", err)
	}
}

// cronLogger adapts slog to cron.Logger so recovered job panics are logged.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Info(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
