package workerpool_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdcore/internal/workerpool"
)

func TestWorkerPoolRunsAllSubmittedJobs(t *testing.T) {
	pool := workerpool.NewWorkerPool(4)
	defer pool.Shutdown()

	var completed int64
	const n = 50
	for i := 0; i < n; i++ {
		err := pool.Submit(context.Background(), func() {
			atomic.AddInt64(&completed, 1)
		})
		require.NoError(t, err)
	}
	pool.Shutdown()

	require.Equal(t, int64(n), atomic.LoadInt64(&completed))
	require.Equal(t, int64(n), pool.Stats().Snapshot().TasksCompleted)
}

func TestWorkerPoolRecoversPanickingJob(t *testing.T) {
	pool := workerpool.NewWorkerPool(2)
	defer pool.Shutdown()

	require.NoError(t, pool.Submit(context.Background(), func() {
		panic("boom")
	}))
	require.NoError(t, pool.Submit(context.Background(), func() {}))
	pool.Shutdown()

	snap := pool.Stats().Snapshot()
	require.Equal(t, int64(1), snap.TasksFailed)
	require.Equal(t, int64(1), snap.TasksCompleted)
}

func TestWorkerPoolSubmitRespectsCancelledContext(t *testing.T) {
	pool := workerpool.NewDynamicWorkerPoolWithConfig(1, 1, workerpool.DynamicConfig{})
	defer pool.Shutdown()

	// Fill the single worker and its queue so the next Submit would block.
	block := make(chan struct{})
	require.NoError(t, pool.Submit(context.Background(), func() { <-block }))
	for i := 0; i < 4; i++ {
		_ = pool.Submit(context.Background(), func() {})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Submit(ctx, func() {})
	close(block)

	if err != nil {
		require.ErrorIs(t, err, context.DeadlineExceeded)
	}
}

func TestDeadlockDetectorAlertsOnTimeout(t *testing.T) {
	dd := workerpool.NewDeadlockDetector(10*time.Millisecond, 5*time.Millisecond)
	defer dd.Shutdown()

	dd.RegisterTask("slow-job", "never finishes")
	defer dd.UnregisterTask("slow-job")

	select {
	case alert := <-dd.Alerts():
		require.Equal(t, workerpool.AlertTaskTimeout, alert.Type)
		require.Equal(t, "slow-job", alert.TaskID)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected a deadlock alert")
	}
}

func TestDeadlockDetectorRunJobUnregistersOnCompletion(t *testing.T) {
	dd := workerpool.NewDeadlockDetector(50*time.Millisecond, 10*time.Millisecond)
	defer dd.Shutdown()

	var ran bool
	dd.RunJob("quick-job", "finishes fast", func() { ran = true })
	require.True(t, ran)

	select {
	case <-dd.Alerts():
		t.Fatal("unregistered job should not raise an alert")
	case <-time.After(120 * time.Millisecond):
	}
}
