package jobs

import (
	"invite-warden/internal/cache"
	"invite-warden/internal/config"
	"invite-warden/internal/logger"
	"invite-warden/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	cache    *cache.Store
	ingestor service.EventIngestor
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(cache *cache.Store, ingestor service.EventIngestor, cfg *config.Config) *JobRunner {
	return &JobRunner{
		cache:    cache,
		ingestor: ingestor,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
