// Package jobs runs the periodic maintenance tasks on a cron schedule.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/templui/footprint/internal/logger"
)

var ErrUnknownJob = errors.New("unknown job")

// Job is a named task. Run reports what it did as a count.
type Job struct {
	Name string
	Spec string
	Run  func() (int64, error)
}

type Scheduler struct {
	cron *cron.Cron
	jobs map[string]Job
	log  *slog.Logger
}

// New registers jobs on a cron running in timezone. Nothing runs until Start.
func New(timezone string, jobs ...Job) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	s := &Scheduler{
		cron: cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cron.DiscardLogger))),
		jobs: make(map[string]Job, len(jobs)),
		log:  logger.Component("jobs"),
	}
	for _, job := range jobs {
		_, err = s.cron.AddFunc(job.Spec, func() { s.run(job) })
		if err != nil {
			return nil, fmt.Errorf("invalid schedule for %s: %w", job.Name, err)
		}
		s.jobs[job.Name] = job
	}
	return s, nil
}

func (s *Scheduler) run(job Job) {
	start := time.Now()
	n, err := job.Run()
	if err != nil {
		s.log.Error("job failed", "job", job.Name, "error", err, "duration", time.Since(start))
		return
	}
	s.log.Info("job finished", "job", job.Name, "count", n, "duration", time.Since(start))
}

// RunNow runs a registered job synchronously, outside its schedule.
func (s *Scheduler) RunNow(name string) (int64, error) {
	job, ok := s.jobs[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return job.Run()
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop halts the schedule and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
