package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Each maintenance pass runs under its own deadline so a locked database
// cannot hold the scheduler's singleton slot forever.
const (
	retentionTimeout = 2 * time.Minute
	vacuumTimeout    = 5 * time.Minute
)

// newUsageRetentionTask deletes dispatch records older than the configured
// usage retention.
func newUsageRetentionTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "usage_retention")

	return func(ctx context.Context) error {
		retention := deps.Config.Usage.Retention
		if retention <= 0 {
			log.WarnContext(ctx, "Usage retention is not positive, skipping", "retention", retention)
			return nil
		}

		cutoff := deps.Now().Add(-retention)
		log.InfoContext(ctx, "Pruning dispatch records", "cutoff", cutoff.UTC().Format(time.RFC3339))

		timeoutCtx, cancel := context.WithTimeout(ctx, retentionTimeout)
		defer cancel()

		removed, err := deps.Store.PruneDispatches(timeoutCtx, cutoff)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.WarnContext(ctx, "Timeout pruning dispatch records")
			}
			return fmt.Errorf("usage retention failed: %w", err)
		}

		log.InfoContext(ctx, "Pruned dispatch records", "removed", removed)
		return nil
	}
}

// newSQLMaintenanceTask compacts the usage database once retention has
// freed pages.
func newSQLMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "sql_maintenance")

	return func(ctx context.Context) error {
		started := deps.Now()

		timeoutCtx, cancel := context.WithTimeout(ctx, vacuumTimeout)
		defer cancel()

		err := deps.Store.RunSQLMaintenance(timeoutCtx)
		elapsed := deps.Now().Sub(started)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.WarnContext(ctx, "Timeout compacting usage database", "elapsed", elapsed)
			}
			return fmt.Errorf("usage database maintenance failed: %w", err)
		}

		log.InfoContext(ctx, "Compacted usage database", "elapsed", elapsed)
		return nil
	}
}
