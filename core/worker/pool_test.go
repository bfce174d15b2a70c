package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAll_OrderPreserved(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	results := ProcessAll(context.Background(), items, func(ctx context.Context, n int) (int, error) {
		return n * 10, nil
	}, Options{Workers: 3})

	require.Len(t, results, len(items))
	for i, r := range results {
		assert.NoError(t, r.Err)
		assert.Equal(t, items[i], r.Input)
		assert.Equal(t, items[i]*10, r.Output)
	}
}

func TestProcessAll_ErrorsIsolated(t *testing.T) {
	items := []int{1, 2, 3}

	results := ProcessAll(context.Background(), items, func(ctx context.Context, n int) (int, error) {
		if n == 2 {
			return 0, fmt.Errorf("boom")
		}
		return n, nil
	}, Options{Workers: 2})

	assert.NoError(t, results[0].Err)
	assert.EqualError(t, results[1].Err, "boom")
	assert.NoError(t, results[2].Err)
}

func TestProcessAll_BoundedConcurrency(t *testing.T) {
	const workers = 2
	var current, peak int32
	var mu sync.Mutex

	items := make([]int, 20)
	ProcessAll(context.Background(), items, func(ctx context.Context, n int) (int, error) {
		c := atomic.AddInt32(&current, 1)
		mu.Lock()
		if c > peak {
			peak = c
		}
		mu.Unlock()
		defer atomic.AddInt32(&current, -1)
		return 0, nil
	}, Options{Workers: workers})

	assert.LessOrEqual(t, peak, int32(workers))
}

func TestProcessAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int32
	results := ProcessAll(ctx, []int{1, 2}, func(ctx context.Context, n int) (int, error) {
		atomic.AddInt32(&ran, 1)
		return 0, nil
	}, Options{Workers: 1})

	assert.Zero(t, atomic.LoadInt32(&ran))
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}
