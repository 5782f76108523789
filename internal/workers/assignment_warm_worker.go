package workers

import (
	"context"
	"time"

	"arkfleet/opsboard/internal/logging"
	"arkfleet/opsboard/internal/services"
)

// StartAssignmentWarmer keeps today's van-assignment map warm so the first
// morning dashboard request does not pay for the event-stream scan.
func StartAssignmentWarmer(ctx context.Context, correlator *services.CorrelatorService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	warmTask(ctx, correlator)

	for {
		select {
		case <-ticker.C:
			warmTask(ctx, correlator)
		case <-ctx.Done():
			return
		}
	}
}

func warmTask(ctx context.Context, correlator *services.CorrelatorService) {
	today := time.Now().Format("2006-01-02")
	if _, err := correlator.VanAssignments(ctx, today); err != nil {
		logging.Warn("assignment warm failed", "date", today, "error", err)
	}
}
