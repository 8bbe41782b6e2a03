package jobs

import (
	"sainath-backend/internal/config"
	"sainath-backend/internal/logger"
	"sainath-backend/internal/repository/postgres"
	"sainath-backend/internal/service"
	"sainath-backend/internal/storage"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store  *postgres.Store
	email  service.EmailService
	blobs  storage.BlobStorage
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, email service.EmailService, blobs storage.BlobStorage, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:  store,
		email:  email,
		blobs:  blobs,
		config: cfg,
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

// RunAllJobs runs every job once (for manual execution)
func (jr *JobRunner) RunAllJobs() {
	jr.SendPendingVerificationDigest()
	jr.CleanupOrphanedFiles()
}
