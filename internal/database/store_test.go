package database_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/a1zero/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.NewDB(filepath.Join(t.TempDir(), "usage.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDB(db, log) })

	return database.NewStore(db, log)
}

func TestRecordDispatchValidation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.Error(t, store.RecordDispatch(ctx, nil))
	require.Error(t, store.RecordDispatch(ctx, &database.Dispatch{Model: "x"}))
	require.Error(t, store.RecordDispatch(ctx, &database.Dispatch{UserID: 1}))

	d := &database.Dispatch{UserID: 1, ChatID: 2, RequestedModel: "x", Model: "x", Success: true, DurationMS: -3}
	require.NoError(t, store.RecordDispatch(ctx, d))
	assert.NotZero(t, d.ID)
	assert.False(t, d.CreatedAt.IsZero())
	assert.Equal(t, int64(0), d.DurationMS)
}

func TestUsageSummary(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	records := []database.Dispatch{
		{UserID: 1, Model: "sonar", RequestedModel: "sonar", Success: true, DurationMS: 100},
		{UserID: 2, Model: "sonar", RequestedModel: "sonar", Success: true, DurationMS: 300},
		{UserID: 3, Model: "sonar", RequestedModel: "ghost", Fallback: true, Success: false, DurationMS: 200},
		{UserID: 1, Model: "deepseek", RequestedModel: "deepseek", Success: true, DurationMS: 50},
		{UserID: 1, Model: "deepseek", RequestedModel: "deepseek", Success: true, DurationMS: 50, CreatedAt: now.Add(-48 * time.Hour)},
	}
	for i := range records {
		require.NoError(t, store.RecordDispatch(ctx, &records[i]))
	}

	usage, err := store.UsageSummary(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, usage, 2)

	assert.Equal(t, database.ModelUsage{Model: "sonar", Requests: 3, Failures: 1, Fallbacks: 1, AvgDurationMS: 200}, usage[0])
	assert.Equal(t, database.ModelUsage{Model: "deepseek", Requests: 1, Failures: 0, Fallbacks: 0, AvgDurationMS: 50}, usage[1])

	all, err := store.UsageSummary(ctx, now.Add(-72*time.Hour))
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(2), all[1].Requests)
}

func TestPruneDispatches(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for _, age := range []time.Duration{0, time.Hour, 40 * 24 * time.Hour, 90 * 24 * time.Hour} {
		require.NoError(t, store.RecordDispatch(ctx, &database.Dispatch{
			UserID: 1, Model: "sonar", RequestedModel: "sonar", Success: true, CreatedAt: now.Add(-age),
		}))
	}

	deleted, err := store.PruneDispatches(ctx, now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	usage, err := store.UsageSummary(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, int64(2), usage[0].Requests)
}

func TestRunSQLMaintenance(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Ping(context.Background()))
	require.NoError(t, store.RunSQLMaintenance(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, store.RunSQLMaintenance(ctx), context.Canceled)
}

func TestExtractDBNameFromPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"storage.db":                    "storage.db",
		"file:storage.db":               "storage.db",
		"file:/tmp/my%20db.db?mode=rwc": "/tmp/my db.db",
		"/var/lib/a1zero/usage.db?x=y":  "/var/lib/a1zero/usage.db",
	}
	for in, want := range tests {
		assert.Equal(t, want, database.ExtractDBNameFromPath(in), "path %q", in)
	}
}
