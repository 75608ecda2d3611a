package box3d

import "fmt"

/// Report every leaf whose bounds intersect box. The callback returns false
/// to stop early. The order is the same for the same tree state.
func (tree *B3Tree) Query(box B3BoundingBox, callback B3TreeQueryCallback) {
	tree.queryNode(0, 0, box, callback)
}

/// Append the leaves intersecting box to results.
func (tree *B3Tree) QueryLeaves(box B3BoundingBox, results []int) []int {
	tree.Query(box, func(leafIndex int) bool {
		results = append(results, leafIndex)
		return true
	})
	return results
}

func (tree *B3Tree) queryNode(level int, nodeIndex int, box B3BoundingBox, callback B3TreeQueryCallback) bool {
	node := &tree.M_levels[level].Nodes[nodeIndex]
	for i := 0; i < node.ChildCount; i++ {
		if !B3TestOverlapBoundingBoxes(node.Bounds[i], box) {
			continue
		}

		child := node.Children[i]
		if child.IsLeaf() {
			if !callback(child.Index) {
				return false
			}
		} else if !tree.queryNode(level+1, child.Index, box, callback) {
			return false
		}
	}
	return true
}

/// Append every pair of intersecting leaves, each once with LeafA < LeafB.
/// Sibling subtrees are descended together, so a pair of disjoint subtrees
/// is only ever tested once.
func (tree *B3Tree) GetSelfOverlaps(results []B3Pair) []B3Pair {
	if len(tree.M_leaves) < 2 {
		return results
	}
	return tree.selfOverlapsInNode(0, 0, results)
}

func (tree *B3Tree) selfOverlapsInNode(level int, nodeIndex int, results []B3Pair) []B3Pair {
	node := &tree.M_levels[level].Nodes[nodeIndex]
	for i := 0; i < node.ChildCount; i++ {
		for j := i + 1; j < node.ChildCount; j++ {
			if B3TestOverlapBoundingBoxes(node.Bounds[i], node.Bounds[j]) {
				results = tree.overlapsBetween(level+1, node.Children[i], node.Bounds[i], level+1, node.Children[j], node.Bounds[j], results)
			}
		}
		if node.Children[i].IsInternal() {
			results = tree.selfOverlapsInNode(level+1, node.Children[i].Index, results)
		}
	}
	return results
}

// Pairs between two disjoint subtrees whose bounds are known to intersect.
// levelA and levelB are the levels an internal a or b lives in.
func (tree *B3Tree) overlapsBetween(levelA int, a B3ChildRef, boundsA B3BoundingBox, levelB int, b B3ChildRef, boundsB B3BoundingBox, results []B3Pair) []B3Pair {
	switch {
	case a.IsLeaf() && b.IsLeaf():
		return append(results, MakeB3Pair(a.Index, b.Index))
	case a.IsLeaf():
		return tree.leafOverlapsInNode(a.Index, boundsA, levelB, b.Index, results)
	case b.IsLeaf():
		return tree.leafOverlapsInNode(b.Index, boundsB, levelA, a.Index, results)
	}

	nodeA := &tree.M_levels[levelA].Nodes[a.Index]
	nodeB := &tree.M_levels[levelB].Nodes[b.Index]
	for i := 0; i < nodeA.ChildCount; i++ {
		for j := 0; j < nodeB.ChildCount; j++ {
			if B3TestOverlapBoundingBoxes(nodeA.Bounds[i], nodeB.Bounds[j]) {
				results = tree.overlapsBetween(levelA+1, nodeA.Children[i], nodeA.Bounds[i], levelB+1, nodeB.Children[j], nodeB.Bounds[j], results)
			}
		}
	}
	return results
}

func (tree *B3Tree) leafOverlapsInNode(leafIndex int, bounds B3BoundingBox, level int, nodeIndex int, results []B3Pair) []B3Pair {
	node := &tree.M_levels[level].Nodes[nodeIndex]
	for i := 0; i < node.ChildCount; i++ {
		if !B3TestOverlapBoundingBoxes(node.Bounds[i], bounds) {
			continue
		}
		child := node.Children[i]
		if child.IsLeaf() {
			results = append(results, MakeB3Pair(leafIndex, child.Index))
		} else {
			results = tree.leafOverlapsInNode(leafIndex, bounds, level+1, child.Index, results)
		}
	}
	return results
}

/// Same pairs as GetSelfOverlaps, found by querying the tree once per leaf
/// and keeping only partners with a higher index. Simpler, and does more
/// redundant work.
func (tree *B3Tree) GetSelfOverlapsViaQueries(results []B3Pair) []B3Pair {
	return tree.selfOverlapsViaQueries(0, len(tree.M_leaves), results)
}

func (tree *B3Tree) selfOverlapsViaQueries(start int, end int, results []B3Pair) []B3Pair {
	for leafIndex := start; leafIndex < end; leafIndex++ {
		leaf := tree.M_leaves[leafIndex]
		bounds := tree.M_levels[leaf.Level].Nodes[leaf.Node].Bounds[leaf.Child]
		tree.Query(bounds, func(other int) bool {
			if other > leafIndex {
				results = append(results, B3Pair{LeafA: leafIndex, LeafB: other})
			}
			return true
		})
	}
	return results
}

/// Per-leaf self-overlap with the leaves split across workers. Each worker
/// fills its own buffer; they are concatenated in worker order.
func (tree *B3Tree) GetSelfOverlapsParallel(workers int, results []B3Pair) ([]B3Pair, error) {
	if workers <= 0 {
		return results, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	buffers := make([][]B3Pair, workers)
	err := B3Task(workers, len(tree.M_leaves), func(worker, start, end int) error {
		buffers[worker] = tree.selfOverlapsViaQueries(start, end, nil)
		return nil
	})
	if err != nil {
		return results, err
	}
	for _, buffer := range buffers {
		results = append(results, buffer...)
	}
	return results, nil
}
