package async_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/opslens/opslens/pkg/utils/async"
)

func TestBatch(t *testing.T) {
	t.Run("Runs all tasks and waits for completion", func(t *testing.T) {
		ctx := context.Background()
		var counter atomic.Int32

		async.Batch(ctx,
			func(ctx context.Context) { counter.Add(1) },
			func(ctx context.Context) { counter.Add(1) },
			func(ctx context.Context) { counter.Add(1) },
		)

		gt.Equal(t, int32(3), counter.Load())
	})

	t.Run("Tasks run concurrently", func(t *testing.T) {
		ctx := context.Background()
		var mu sync.Mutex
		inFlight := 0
		peak := 0
		ready := make(chan struct{})

		enter := func() {
			mu.Lock()
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			if inFlight == 2 {
				close(ready)
			}
			mu.Unlock()
		}
		leave := func() {
			mu.Lock()
			inFlight--
			mu.Unlock()
		}

		task := func(ctx context.Context) {
			enter()
			<-ready
			leave()
		}

		async.Batch(ctx, task, task)

		gt.Equal(t, 2, peak)
	})

	t.Run("Panic in one task does not stop siblings", func(t *testing.T) {
		ctx := context.Background()
		var counter atomic.Int32

		async.Batch(ctx,
			func(ctx context.Context) { panic("boom") },
			func(ctx context.Context) { counter.Add(1) },
			func(ctx context.Context) { counter.Add(1) },
		)

		gt.Equal(t, int32(2), counter.Load())
	})

	t.Run("Empty batch returns immediately", func(t *testing.T) {
		async.Batch(context.Background())
	})

	t.Run("Tasks receive the caller context", func(t *testing.T) {
		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "marker")
		var got string

		async.Batch(ctx, func(ctx context.Context) {
			if v, ok := ctx.Value(key{}).(string); ok {
				got = v
			}
		})

		gt.Equal(t, "marker", got)
	})
}
