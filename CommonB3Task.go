package box3d

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

/// Split [0, count) into at most workers contiguous ranges and run job on
/// each range in its own goroutine. Returns the first job error.
func B3Task(workers int, count int, job func(worker, start, end int) error) error {
	if workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	if count == 0 {
		return nil
	}

	workers = MinInt(workers, count)
	chunk := (count + workers - 1) / workers

	var group errgroup.Group
	group.SetLimit(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := MinInt(start+chunk, count)
		if start >= end {
			break
		}
		worker := w
		group.Go(func() error {
			return job(worker, start, end)
		})
	}

	return group.Wait()
}
