package workers

import (
	"context"
	"time"

	"arkfleet/opsboard/internal/services"
)

// InitWorkers starts the long-running background workers.
func InitWorkers(ctx context.Context, correlator *services.CorrelatorService) {
	go StartAssignmentWarmer(ctx, correlator, 5*time.Minute)
}
