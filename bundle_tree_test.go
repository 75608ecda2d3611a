package box3d_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/ByteArena/box3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBundleTree(t *testing.T, fallbackGroups int, boxes []box3d.B3BoundingBox) *box3d.B3BundleTree {
	t.Helper()

	def := box3d.MakeB3TreeDef()
	def.StreamingFallbackGroups = fallbackGroups
	tree, err := box3d.NewB3BundleTree(def)
	require.NoError(t, err)
	for _, box := range boxes {
		tree.Add(box)
	}
	tree.Validate()
	return tree
}

func TestBundleTreeStreaming(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 4, 5, 9, 33, 128, 257} {
		boxes := randomBoxes(int64(100+n), n)
		expected := bruteForceOverlaps(boxes)

		// 0 always streams, 1000 always falls back to per-leaf queries.
		for _, fallback := range []int{0, 1, box3d.B3_streamingFallbackGroups, 1000} {
			tree := newBundleTree(t, fallback, boxes)

			pairs := tree.GetSelfOverlapsStreaming(nil)
			assert.Equal(t, expected, sortPairs(pairs), "n=%d fallback=%d", n, fallback)

			for _, workers := range []int{1, 2, 7} {
				pairs, err := tree.GetSelfOverlapsStreamingParallel(workers, nil)
				require.NoError(t, err)
				assert.Equal(t, expected, sortPairs(pairs), "n=%d fallback=%d workers=%d", n, fallback, workers)
			}
		}
	}
}

func TestBundleTreeStreamingDenseCluster(t *testing.T) {
	// Everything overlaps everything, so groups are carried down whole.
	rng := rand.New(rand.NewSource(77))
	boxes := make([]box3d.B3BoundingBox, 60)
	for i := range boxes {
		boxes[i] = randomBox(rng, 1.0, 5.0).Expand(1.0)
	}
	tree := newBundleTree(t, 0, boxes)

	expected := bruteForceOverlaps(boxes)
	assert.Len(t, expected, len(boxes)*(len(boxes)-1)/2)
	assert.Equal(t, expected, sortPairs(tree.GetSelfOverlapsStreaming(nil)))
}

func TestBundleTreeStrategies(t *testing.T) {
	boxes := randomBoxes(13, 220)
	expected := bruteForceOverlaps(boxes)
	tree := newBundleTree(t, box3d.B3_streamingFallbackGroups, boxes)

	assert.Equal(t, expected, sortPairs(tree.GetSelfOverlaps(nil)))
	assert.Equal(t, expected, sortPairs(tree.GetSelfOverlapsViaQueries(nil)))

	pairs, err := tree.GetSelfOverlapsParallel(4, nil)
	require.NoError(t, err)
	assert.Equal(t, expected, sortPairs(pairs))

	_, err = tree.GetSelfOverlapsParallel(0, nil)
	assert.True(t, errors.Is(err, box3d.ErrInvalidWorkers))
	_, err = tree.GetSelfOverlapsStreamingParallel(-1, nil)
	assert.True(t, errors.Is(err, box3d.ErrInvalidWorkers))

	query := makeBox(5, 5, 5, 10, 10, 10)
	assert.Equal(t, bruteForceQuery(boxes, query), sortedInts(tree.QueryLeaves(query, nil)))
}

func TestBundleTreeRefitParallel(t *testing.T) {
	boxes := randomBoxes(14, 300)
	tree := newBundleTree(t, box3d.B3_streamingFallbackGroups, boxes)

	rng := rand.New(rand.NewSource(15))
	for i := range boxes {
		boxes[i] = randomBox(rng, 20.0, 3.0)
		require.NoError(t, tree.SetLeafBounds(i, boxes[i]))
	}

	require.NoError(t, tree.RefitParallel(3))
	tree.Validate()
	tree.ValidateBounds()
	assert.Equal(t, bruteForceOverlaps(boxes), sortPairs(tree.GetSelfOverlapsStreaming(nil)))
}

func TestBundleTreeCollapseSplicesSubtree(t *testing.T) {
	tree := newBundleTree(t, box3d.B3_streamingFallbackGroups, randomBoxes(16, 80))
	depth := tree.GetMaximumDepth()
	require.Greater(t, depth, 1)

	// Removing leaves never leaves an under-populated node behind, whatever
	// the survivor of a collapse is.
	for tree.GetLeafCount() > 0 {
		_, err := tree.RemoveAt(tree.GetLeafCount() / 2)
		require.NoError(t, err)
		tree.Validate()
		tree.ValidateBounds()
		require.LessOrEqual(t, tree.GetMaximumDepth(), depth)
	}
	assert.Equal(t, 1, tree.GetNodeCount())
}
