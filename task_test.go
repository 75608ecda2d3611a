package box3d_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/ByteArena/box3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCoversRange(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8, 100} {
		counts := make([]int32, 37)
		err := box3d.B3Task(workers, len(counts), func(worker, start, end int) error {
			for i := start; i < end; i++ {
				atomic.AddInt32(&counts[i], 1)
			}
			return nil
		})
		require.NoError(t, err)
		for i, count := range counts {
			assert.Equal(t, int32(1), count, "index %d with %d workers", i, workers)
		}
	}
}

func TestTaskErrors(t *testing.T) {
	errBoom := errors.New("boom")
	err := box3d.B3Task(4, 10, func(worker, start, end int) error {
		if start == 0 {
			return errBoom
		}
		return nil
	})
	assert.True(t, errors.Is(err, errBoom))

	assert.True(t, errors.Is(box3d.B3Task(0, 10, nil), box3d.ErrInvalidWorkers))

	called := false
	require.NoError(t, box3d.B3Task(2, 0, func(worker, start, end int) error {
		called = true
		return nil
	}))
	assert.False(t, called)
}
