package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopJob(ctx context.Context) error { return nil }

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 * * * *"))
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("every hour"))
	assert.Error(t, ValidateCronSchedule("0 0 * * * *"), "six fields are not accepted")
}

func TestDescribeSchedule(t *testing.T) {
	assert.Equal(t, "Every hour at :00", DescribeSchedule("0 * * * *"))
	assert.Equal(t, "5 4 * * *", DescribeSchedule("5 4 * * *"))
}

func TestIntegrityCheckScheduler_StartStop(t *testing.T) {
	s := NewIntegrityCheckScheduler("0 * * * *", noopJob)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))
	assert.Equal(t, 0, next.Minute())

	// Starting twice is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	// Stopping twice is a no-op.
	s.Stop()
}

func TestIntegrityCheckScheduler_InvalidSchedule(t *testing.T) {
	s := NewIntegrityCheckScheduler("not a schedule", noopJob)

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestIntegrityCheckScheduler_NoJob(t *testing.T) {
	s := NewIntegrityCheckScheduler("0 * * * *", nil)

	assert.Error(t, s.Start(context.Background()))
	assert.Error(t, s.RunNow(context.Background()))
}

func TestIntegrityCheckScheduler_StopsWithContext(t *testing.T) {
	s := NewIntegrityCheckScheduler("0 * * * *", noopJob)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestIntegrityCheckScheduler_RunNow(t *testing.T) {
	calls := 0
	boom := errors.New("queue unavailable")
	s := NewIntegrityCheckScheduler("0 * * * *", func(ctx context.Context) error {
		calls++
		if calls > 1 {
			return boom
		}
		return nil
	})

	assert.NoError(t, s.RunNow(context.Background()))
	assert.ErrorIs(t, s.RunNow(context.Background()), boom)
	assert.Equal(t, 2, calls)
}
