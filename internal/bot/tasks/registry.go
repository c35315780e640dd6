package tasks

import (
	"context"
	"time"

	"github.com/edgard/a1zero/internal/config"
)

// ScheduledTaskFunc is the signature of every scheduled task. It should
// respect ctx for cancellation and return an error so the scheduler can log
// failures.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks returns every task keyed by the name used in the
// scheduler.tasks section of the configuration. Without a store there is
// nothing to maintain and the map is empty.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := make(map[string]ScheduledTaskFunc)

	if deps.Store == nil {
		deps.Logger.Info("Usage store disabled, no scheduled tasks registered")
		return tasks
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	tasks[config.TaskUsageRetention] = newUsageRetentionTask(deps)
	tasks[config.TaskSQLMaintenance] = newSQLMaintenanceTask(deps)

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
