package bot_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/a1zero/internal/bot"
	"github.com/edgard/a1zero/internal/bot/tasks"
	"github.com/edgard/a1zero/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noop(context.Context) error { return nil }

func TestSchedulerSchedulesOnlyValidTasks(t *testing.T) {
	t.Parallel()

	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"usage_retention": {Enabled: true, Schedule: "0 0 3 * * *"},
		"sql_maintenance": {Enabled: false, Schedule: "0 30 3 * * 0"},
		"unregistered":    {Enabled: true, Schedule: "0 0 4 * * *"},
		"no_schedule":     {Enabled: true},
		"bad_schedule":    {Enabled: true, Schedule: "every tuesday"},
	}}
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"usage_retention": noop,
		"sql_maintenance": noop,
		"no_schedule":     noop,
		"bad_schedule":    noop,
	}

	s, err := bot.NewScheduler(discardLogger(), cfg, taskMap)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	t.Cleanup(func() { _ = s.Stop() })

	assert.Equal(t, []string{"usage_retention"}, s.ScheduledTasks())
}

func TestSchedulerStartStop(t *testing.T) {
	t.Parallel()

	s, err := bot.NewScheduler(discardLogger(), nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.Stop(), "stopping an idle scheduler is a no-op")
	require.NoError(t, s.Start())
	assert.Error(t, s.Start(), "double start")
	assert.Empty(t, s.ScheduledTasks())
	require.NoError(t, s.Stop())
}
