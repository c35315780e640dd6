package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the usage database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// RecordDispatch inserts one dispatch outcome and sets its ID.
	RecordDispatch(ctx context.Context, d *Dispatch) error

	// UsageSummary aggregates dispatches created at or after since, busiest
	// model first.
	UsageSummary(ctx context.Context, since time.Time) ([]ModelUsage, error)

	// PruneDispatches deletes dispatches created before cutoff and returns
	// how many rows were removed.
	PruneDispatches(ctx context.Context, cutoff time.Time) (int64, error)

	// RunSQLMaintenance performs VACUUM and ANALYZE.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore implements Store using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by a connected sqlx.DB.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) RecordDispatch(ctx context.Context, d *Dispatch) error {
	if d == nil {
		return fmt.Errorf("cannot record nil dispatch")
	}
	if d.UserID == 0 {
		return fmt.Errorf("dispatch must have a non-zero user_id")
	}
	if d.Model == "" {
		return fmt.Errorf("dispatch must have a model")
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	d.CreatedAt = d.CreatedAt.UTC()
	if d.DurationMS < 0 {
		d.DurationMS = 0
	}

	const query = `
        INSERT INTO dispatches (created_at, user_id, chat_id, requested_model, model, fallback, success, duration_ms)
        VALUES (:created_at, :user_id, :chat_id, :requested_model, :model, :fallback, :success, :duration_ms);
    `
	result, err := s.db.NamedExecContext(ctx, query, d)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error recording dispatch", "user_id", d.UserID, "model", d.Model, "error", err)
		return fmt.Errorf("failed to record dispatch (user %d, model %s): %w", d.UserID, d.Model, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		d.ID = id
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after recording dispatch", "error", err)
	}

	s.logger.DebugContext(ctx, "Dispatch recorded", "dispatch_id", d.ID, "model", d.Model, "success", d.Success)
	return nil
}

func (s *sqlxStore) UsageSummary(ctx context.Context, since time.Time) ([]ModelUsage, error) {
	const query = `
        SELECT model,
               COUNT(*)                                         AS requests,
               COALESCE(SUM(CASE WHEN success THEN 0 ELSE 1 END), 0) AS failures,
               COALESCE(SUM(CASE WHEN fallback THEN 1 ELSE 0 END), 0) AS fallbacks,
               CAST(COALESCE(AVG(duration_ms), 0) AS INTEGER)   AS avg_duration_ms
        FROM dispatches
        WHERE created_at >= ?
        GROUP BY model
        ORDER BY requests DESC, model ASC;
    `
	var usage []ModelUsage
	if err := s.db.SelectContext(ctx, &usage, query, since.UTC()); err != nil {
		s.logger.ErrorContext(ctx, "Error querying usage summary", "since", since, "error", err)
		return nil, fmt.Errorf("failed to query usage summary: %w", err)
	}
	return usage, nil
}

func (s *sqlxStore) PruneDispatches(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM dispatches WHERE created_at < ?;`, cutoff.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error pruning dispatches", "cutoff", cutoff, "error", err)
		return 0, fmt.Errorf("failed to prune dispatches: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read pruned row count: %w", err)
	}
	s.logger.InfoContext(ctx, "Pruned old dispatches", "cutoff", cutoff, "deleted", n)
	return n, nil
}

func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance")
	start := time.Now()

	// VACUUM cannot run inside a transaction.
	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "VACUUM failed", "error", err)
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "ANALYZE;"); err != nil {
		s.logger.ErrorContext(ctx, "ANALYZE failed", "error", err)
		return fmt.Errorf("failed to analyze database: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance completed", "duration", time.Since(start))
	return nil
}
