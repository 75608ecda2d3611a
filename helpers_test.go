package box3d_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/ByteArena/box3d"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

type namedIndex struct {
	name  string
	index box3d.B3SpatialIndex
}

// One scalar tree per interesting width, plus the bundle tree.
func makeIndexes(t *testing.T) []namedIndex {
	t.Helper()

	var res []namedIndex
	for _, width := range []int{2, 3, 4, 8} {
		def := box3d.MakeB3TreeDef()
		def.Width = width
		tree, err := box3d.NewB3Tree(def)
		require.NoError(t, err)
		res = append(res, namedIndex{name: fmt.Sprintf("tree/width=%d", width), index: tree})
	}

	bundle, err := box3d.NewB3BundleTree(box3d.MakeB3TreeDef())
	require.NoError(t, err)
	res = append(res, namedIndex{name: "bundle", index: bundle})
	return res
}

func makeBox(minX, minY, minZ, maxX, maxY, maxZ float64) box3d.B3BoundingBox {
	return box3d.MakeB3BoundingBox(
		box3d.MakeB3Vec3(minX, minY, minZ),
		box3d.MakeB3Vec3(maxX, maxY, maxZ),
	)
}

func randomBox(rng *rand.Rand, extent float64, maxSize float64) box3d.B3BoundingBox {
	var min, max box3d.B3Vec3
	for axis := 0; axis < 3; axis++ {
		min[axis] = rng.Float64() * extent
		max[axis] = min[axis] + rng.Float64()*maxSize
	}
	return box3d.MakeB3BoundingBox(min, max)
}

func randomBoxes(seed int64, n int) []box3d.B3BoundingBox {
	rng := rand.New(rand.NewSource(seed))
	boxes := make([]box3d.B3BoundingBox, n)
	for i := range boxes {
		boxes[i] = randomBox(rng, 20.0, 3.0)
	}
	return boxes
}

func leafBoundsOf(t *testing.T, index box3d.B3SpatialIndex) []box3d.B3BoundingBox {
	t.Helper()

	boxes := make([]box3d.B3BoundingBox, index.GetLeafCount())
	for i := range boxes {
		bounds, err := index.GetLeafBounds(i)
		require.NoError(t, err)
		boxes[i] = bounds
	}
	return boxes
}

// Every intersecting pair, the slow way.
func bruteForceOverlaps(boxes []box3d.B3BoundingBox) []box3d.B3Pair {
	res := make([]box3d.B3Pair, 0)
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if box3d.B3TestOverlapBoundingBoxes(boxes[i], boxes[j]) {
				res = append(res, box3d.B3Pair{LeafA: i, LeafB: j})
			}
		}
	}
	return res
}

func bruteForceQuery(boxes []box3d.B3BoundingBox, box box3d.B3BoundingBox) []int {
	res := make([]int, 0)
	for i := range boxes {
		if box3d.B3TestOverlapBoundingBoxes(boxes[i], box) {
			res = append(res, i)
		}
	}
	return res
}

func sortPairs(pairs []box3d.B3Pair) []box3d.B3Pair {
	res := make([]box3d.B3Pair, 0, len(pairs))
	res = append(res, pairs...)
	slices.SortFunc(res, box3d.B3PairCompare)
	return res
}

func queryAll(index box3d.B3SpatialIndex, box box3d.B3BoundingBox) []int {
	res := make([]int, 0)
	index.Query(box, func(leafIndex int) bool {
		res = append(res, leafIndex)
		return true
	})
	return res
}

func sortedInts(values []int) []int {
	res := make([]int, 0, len(values))
	res = append(res, values...)
	slices.Sort(res)
	return res
}
