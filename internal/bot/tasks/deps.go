// Package tasks implements the bot's scheduled maintenance tasks and the
// registry the scheduler looks them up in.
package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/edgard/a1zero/internal/config"
)

// Store is the part of database.Store the tasks need.
type Store interface {
	PruneDispatches(ctx context.Context, cutoff time.Time) (int64, error)
	RunSQLMaintenance(ctx context.Context) error
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  Store
	Config *config.Config
	// Now defaults to time.Now.
	Now func() time.Time
}
