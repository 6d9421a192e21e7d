// Package scheduler wires up the cron job that periodically runs the
// saved-search matcher.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CycleRunner is the matcher surface the scheduler drives
type CycleRunner interface {
	RunCycle(ctx context.Context)
}

// Scheduler wraps robfig/cron and owns the matcher's recurring schedule.
// It replaces a process-global timer with an injectable object so tests can
// drive cycles directly instead of waiting on the wall clock.
type Scheduler struct {
	cron    *cron.Cron
	matcher CycleRunner
	spec    string
}

// New creates a Scheduler that fires every interval
func New(matcher CycleRunner, interval time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		matcher: matcher,
		spec:    fmt.Sprintf("@every %s", interval),
	}
}

// Start registers the job and starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.matcher.RunCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] matcher schedule started: %s", s.spec)
	return nil
}

// Stop shuts down the scheduler. Already-running cycles finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] matcher schedule stopped")
}
