package bot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/a1zero/internal/bot"
)

type blockingListener struct {
	started chan struct{}
}

func (l *blockingListener) Start(ctx context.Context) {
	close(l.started)
	<-ctx.Done()
}

type returningListener struct{}

func (returningListener) Start(context.Context) {}

func newScheduler(t *testing.T) *bot.Scheduler {
	t.Helper()
	s, err := bot.NewScheduler(discardLogger(), nil, nil)
	require.NoError(t, err)
	return s
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	listener := &blockingListener{started: make(chan struct{})}
	b := bot.NewBot(discardLogger(), listener, newScheduler(t))

	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	<-listener.started
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRunFailsWhenListenerStopsEarly(t *testing.T) {
	t.Parallel()

	b := bot.NewBot(discardLogger(), returningListener{}, newScheduler(t))

	err := b.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped unexpectedly")
}
