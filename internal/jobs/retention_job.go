package jobs

import (
	"context"
	"log"
	"time"

	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/db/repositories"
	"arkfleet/opsboard/internal/etl"
	"arkfleet/opsboard/internal/logging"
	"arkfleet/opsboard/internal/models/entities"
)

// RetentionJob purges event-stream and movement-log rows past the retention
// window. The reports only ever look back a few weeks; without the purge the
// full-table scans grow without bound.
type RetentionJob struct {
	repo          *repositories.BlobRepository
	retentionDays int
}

func NewRetentionJob(repo *repositories.BlobRepository, retentionDays int) *RetentionJob {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &RetentionJob{repo: repo, retentionDays: retentionDays}
}

// Run purges one table sweep. Rows whose payload carries no parseable date
// are left alone; age cannot be established for them.
func (j *RetentionJob) Run(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -j.retentionDays).Format("2006-01-02")

	for _, table := range []string{constants.TableEventStream, constants.TableCsvTrips} {
		rows, err := j.repo.ScanTable(ctx, table)
		if err != nil {
			return err
		}

		// Stale rows are deleted by id. The date lives under a different
		// key per export (movement logs only carry a start timestamp), so
		// a date-keyed delete cannot reach them all.
		stale := staleRowIDs(rows, cutoff)
		for _, id := range stale {
			if err := j.repo.Delete(ctx, table, id); err != nil {
				return err
			}
		}

		if len(stale) > 0 {
			logging.Info("retention sweep completed",
				"table", table,
				"rows_purged", len(stale),
				"cutoff", cutoff,
			)
		}
	}
	return nil
}

// staleRowIDs picks the rows whose resolved, normalized date falls before
// the cutoff. Rows with no parseable date are never stale.
func staleRowIDs(rows []entities.Row, cutoff string) []string {
	var stale []string
	for i := range rows {
		rec, err := rows[i].Decode()
		if err != nil {
			continue
		}
		raw, _ := etl.ResolveString(rec, append(constants.AliasDate, constants.AliasTripStartTime...)...)
		date, ok := etl.NormalizeDate(raw)
		if !ok || date >= cutoff {
			continue
		}
		stale = append(stale, rows[i].ID)
	}
	return stale
}

// RunScheduled runs the retention job on a schedule (e.g., daily)
func (j *RetentionJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := j.Run(ctx); err != nil {
		log.Printf("[RetentionJob] Error in initial run: %v", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				log.Printf("[RetentionJob] Error in scheduled run: %v", err)
			}
		case <-ctx.Done():
			log.Printf("[RetentionJob] Shutting down scheduled sweep")
			return
		}
	}
}
