package tasks_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/a1zero/internal/bot/tasks"
	"github.com/edgard/a1zero/internal/config"
)

type fakeStore struct {
	cutoff       time.Time
	pruneCalls   int
	maintenances int
	hadDeadline  bool
	err          error
}

func (f *fakeStore) PruneDispatches(_ context.Context, cutoff time.Time) (int64, error) {
	f.pruneCalls++
	f.cutoff = cutoff
	return 3, f.err
}

func (f *fakeStore) RunSQLMaintenance(ctx context.Context) error {
	f.maintenances++
	_, f.hadDeadline = ctx.Deadline()
	return f.err
}

func testDeps(store tasks.Store, retention time.Duration, now time.Time) tasks.TaskDeps {
	cfg := &config.Config{}
	cfg.Usage.Retention = retention
	return tasks.TaskDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:  store,
		Config: cfg,
		Now:    func() time.Time { return now },
	}
}

func TestRegisterAllTasks(t *testing.T) {
	t.Parallel()

	registered := tasks.RegisterAllTasks(testDeps(&fakeStore{}, time.Hour, time.Now()))
	assert.Contains(t, registered, config.TaskUsageRetention)
	assert.Contains(t, registered, config.TaskSQLMaintenance)

	none := tasks.RegisterAllTasks(testDeps(nil, time.Hour, time.Now()))
	assert.Empty(t, none)
}

func TestUsageRetentionTask(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)

	t.Run("prunes before cutoff", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{}
		task := tasks.RegisterAllTasks(testDeps(store, 48*time.Hour, now))[config.TaskUsageRetention]

		require.NoError(t, task(context.Background()))
		assert.Equal(t, 1, store.pruneCalls)
		assert.Equal(t, now.Add(-48*time.Hour), store.cutoff)
	})

	t.Run("non positive retention skips", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{}
		task := tasks.RegisterAllTasks(testDeps(store, 0, now))[config.TaskUsageRetention]

		require.NoError(t, task(context.Background()))
		assert.Zero(t, store.pruneCalls)
	})

	t.Run("store error", func(t *testing.T) {
		t.Parallel()

		storeErr := errors.New("database is locked")
		task := tasks.RegisterAllTasks(testDeps(&fakeStore{err: storeErr}, time.Hour, now))[config.TaskUsageRetention]

		err := task(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestSQLMaintenanceTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		storeErr error
	}{
		{name: "compacts", storeErr: nil},
		{name: "store error", storeErr: errors.New("disk I/O error")},
		{name: "deadline exceeded", storeErr: context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &fakeStore{err: tt.storeErr}
			task := tasks.RegisterAllTasks(testDeps(store, time.Hour, time.Now()))[config.TaskSQLMaintenance]

			err := task(context.Background())
			assert.Equal(t, 1, store.maintenances)
			assert.True(t, store.hadDeadline, "maintenance runs under a deadline")
			if tt.storeErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.storeErr)
		})
	}
}
