package jobs

import (
	"context"
	"os"
	"strconv"
	"time"

	"arkfleet/opsboard/internal/db/repositories"
)

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(ctx context.Context, repo *repositories.BlobRepository) *RetentionJob {
	days, _ := strconv.Atoi(os.Getenv("EVENT_RETENTION_DAYS"))
	retentionJob := NewRetentionJob(repo, days)

	// Start scheduled sweep in background
	go retentionJob.RunScheduled(ctx, 24*time.Hour)

	return retentionJob
}
