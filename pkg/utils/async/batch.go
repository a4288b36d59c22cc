package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
)

// Batch runs independent tasks concurrently and waits for all of them.
// Each task is isolated: a panic in one is recovered and logged, and
// never prevents its siblings from completing and contributing their
// results. The join returns when the slowest task resolves.
func Batch(ctx context.Context, tasks ...func(ctx context.Context)) {
	var wg sync.WaitGroup
	wg.Add(len(tasks))

	for _, task := range tasks {
		go func(task func(ctx context.Context)) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					ctxlog.From(ctx).Error("Panic in batch task",
						"recover", r,
						"stack", string(debug.Stack()),
					)
				}
			}()

			task(ctx)
		}(task)
	}

	wg.Wait()
}
