package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnceReportsFailures(t *testing.T) {
	s := NewScheduler()

	var ran int32
	s.AddJob("counter", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})
	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})
	s.AddJob("after-failure", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job failing")
	assert.Equal(t, int32(2), atomic.LoadInt32(&ran), "a failing job must not stop the others")
}

func TestScheduler_DailyJobFiresOnlyAtItsHour(t *testing.T) {
	s := NewScheduler()
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	s.now = func() time.Time {
		return time.Date(2026, 1, 5, 16, 0, 0, 0, time.UTC) // 23:00 local
	}

	var fired, skipped int32
	var firedAt time.Time
	s.AddDailyJob("at-close-out", 23, loc, func(ctx context.Context, now time.Time) error {
		atomic.AddInt32(&fired, 1)
		firedAt = now
		return nil
	})
	s.AddDailyJob("at-backstop", 8, loc, func(ctx context.Context, now time.Time) error {
		atomic.AddInt32(&skipped, 1)
		return nil
	})

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	assert.Equal(t, int32(0), atomic.LoadInt32(&skipped), "wrong hour must not fire")
	assert.Equal(t, 23, firedAt.Hour(), "the fire time arrives already in the job timezone")
	assert.Equal(t, loc.String(), firedAt.Location().String())
}

func TestScheduler_DailyJobErrorPropagates(t *testing.T) {
	s := NewScheduler()
	s.now = func() time.Time {
		return time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	}

	s.AddDailyJob("failing-daily", 8, time.UTC, func(ctx context.Context, now time.Time) error {
		return errors.New("batch failed")
	})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing-daily")
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	s.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		close(done)
		return nil
	})

	s.Start()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
