package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerRunsJobsUntilStopped(t *testing.T) {
	var fast, failing atomic.Int32
	s := New(quietLogger(),
		Job{Name: "fast", Interval: 5 * time.Millisecond, Run: func(context.Context) error {
			fast.Add(1)
			return nil
		}},
		Job{Name: "failing", Interval: 5 * time.Millisecond, Run: func(context.Context) error {
			failing.Add(1)
			return errors.New("gateway down")
		}},
	)

	s.Start(context.Background())
	require.Eventually(t, func() bool {
		return fast.Load() >= 3 && failing.Load() >= 3
	}, time.Second, time.Millisecond)
	s.Stop()

	stopped := fast.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, fast.Load())
}

func TestSchedulerSurvivesPanics(t *testing.T) {
	var ticks atomic.Int32
	s := New(quietLogger(), Job{Name: "panicky", Interval: 5 * time.Millisecond, Run: func(context.Context) error {
		ticks.Add(1)
		panic("boom")
	}})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)
	s.Stop()
}

func TestSchedulerStopCancelsTick(t *testing.T) {
	started := make(chan struct{})
	var cancelled atomic.Bool
	s := New(quietLogger(), Job{Name: "slow", Interval: time.Hour, Run: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	}})

	s.Start(context.Background())
	<-started
	s.Stop()
	assert.True(t, cancelled.Load())
}

func TestSchedulerSkipsDisabledJobs(t *testing.T) {
	var ran atomic.Bool
	s := New(quietLogger(), Job{Name: "off", Interval: 0, Run: func(context.Context) error {
		ran.Store(true)
		return nil
	}})

	s.Start(context.Background())
	s.Stop()
	assert.False(t, ran.Load())
}
