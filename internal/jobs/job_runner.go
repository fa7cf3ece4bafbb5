package jobs

import (
	"time"

	"calapan-rental-backend/internal/config"
	"calapan-rental-backend/internal/logger"
	"calapan-rental-backend/internal/repository"
	"calapan-rental-backend/internal/service"
)

// JobRunner coordinates the scheduled booking jobs.
type JobRunner struct {
	store    repository.TxStore
	notifier service.Notifier
	config   *config.Config
	now      service.Clock
}

func NewJobRunner(store repository.TxStore, notifier service.Notifier, cfg *config.Config, clock service.Clock) *JobRunner {
	if clock == nil {
		clock = time.Now
	}
	return &JobRunner{
		store:    store,
		notifier: notifier,
		config:   cfg,
		now:      clock,
	}
}

// Config exposes configuration to the scheduler for cron expressions.
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

// RunAllDailyJobs runs every daily job in sequence (for manual execution).
func (jr *JobRunner) RunAllDailyJobs() {
	jr.SendReturnReminders()
	jr.SendOverdueNotices()
}
