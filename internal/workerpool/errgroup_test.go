package workerpool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdcore/internal/workerpool"
)

func TestRunBoundedRunsEveryJob(t *testing.T) {
	var count int64
	jobs := make([]func(context.Context) error, 10)
	for i := range jobs {
		jobs[i] = func(ctx context.Context) error {
			atomic.AddInt64(&count, 1)
			return nil
		}
	}

	err := workerpool.RunBounded(context.Background(), 3, jobs)
	require.NoError(t, err)
	require.Equal(t, int64(10), count)
}

func TestRunBoundedReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	jobs := []func(context.Context) error{
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return boom },
		func(ctx context.Context) error { return nil },
	}

	err := workerpool.RunBounded(context.Background(), 1, jobs)
	require.ErrorIs(t, err, boom)
}
