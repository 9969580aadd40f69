package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"invite-warden/internal/jobs"
	"invite-warden/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	spec := cfg.ResyncSnapshots
	if spec == "" {
		// every 15 minutes
		spec = "0 */15 * * * *"
	}
	_, err := s.cron.AddFunc(spec, s.jobs.ResyncGuildSnapshots)
	if err != nil {
		logger.Error("Failed to register ResyncGuildSnapshots job", "error", err)
	}
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting scheduler")
	s.cron.Start()
}

// Stop halts the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	logger.Info("Stopping scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
}
