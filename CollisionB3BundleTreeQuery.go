package box3d

import "fmt"

/// Report every leaf whose bounds intersect box. Each node is tested with a
/// single wide intersection against all of its children.
func (tree *B3BundleTree) Query(box B3BoundingBox, callback B3TreeQueryCallback) {
	tree.queryFrom(0, box, callback)
}

func (tree *B3BundleTree) QueryLeaves(box B3BoundingBox, results []int) []int {
	tree.Query(box, func(leafIndex int) bool {
		results = append(results, leafIndex)
		return true
	})
	return results
}

func (tree *B3BundleTree) queryFrom(nodeIndex int, box B3BoundingBox, callback B3TreeQueryCallback) {
	stack := acquireB3NodeStack()
	defer releaseB3NodeStack(stack)

	stack.Push(nodeIndex)
	for stack.GetCount() > 0 {
		node := &tree.M_nodes[stack.Pop()]
		hits := node.Bounds.IntersectsBox(box) & node.occupied()
		for hits != 0 {
			i := B3LaneMaskFirstLane(hits)
			hits &= hits - 1

			child := node.Children[i]
			if child.IsLeaf() {
				if !callback(child.Index) {
					return
				}
			} else {
				stack.Push(child.Index)
			}
		}
	}
}

/// Append every pair of intersecting leaves, each once with LeafA < LeafB,
/// by descending pairs of subtrees together.
func (tree *B3BundleTree) GetSelfOverlaps(results []B3Pair) []B3Pair {
	if len(tree.M_leaves) < 2 {
		return results
	}

	stack := acquireB3RefPairStack()
	defer releaseB3RefPairStack(stack)

	root := MakeB3InternalRef(0)
	stack.Push(b3RefPair{A: root, B: root})
	for stack.GetCount() > 0 {
		pair := stack.Pop()
		a, b := pair.A, pair.B

		switch {
		case a == b:
			node := &tree.M_nodes[a.Index]
			occupied := node.occupied()
			for i := 0; i < node.ChildCount; i++ {
				// Lanes above i only, every sibling pair once.
				hits := node.Bounds.IntersectsBox(node.Bounds.GetLane(i)) & occupied &^ B3LaneMaskFirst(i+1)
				for hits != 0 {
					j := B3LaneMaskFirstLane(hits)
					hits &= hits - 1
					stack.Push(b3RefPair{A: node.Children[i], B: node.Children[j]})
				}
				if node.Children[i].IsInternal() {
					stack.Push(b3RefPair{A: node.Children[i], B: node.Children[i]})
				}
			}

		case a.IsLeaf() && b.IsLeaf():
			results = append(results, MakeB3Pair(a.Index, b.Index))

		case a.IsLeaf() || b.IsLeaf():
			if b.IsLeaf() {
				a, b = b, a
			}
			node := &tree.M_nodes[b.Index]
			hits := node.Bounds.IntersectsBox(tree.leafBounds(a.Index)) & node.occupied()
			for hits != 0 {
				j := B3LaneMaskFirstLane(hits)
				hits &= hits - 1
				stack.Push(b3RefPair{A: a, B: node.Children[j]})
			}

		default:
			nodeA := &tree.M_nodes[a.Index]
			nodeB := &tree.M_nodes[b.Index]
			occupiedB := nodeB.occupied()
			for i := 0; i < nodeA.ChildCount; i++ {
				hits := nodeB.Bounds.IntersectsBox(nodeA.Bounds.GetLane(i)) & occupiedB
				for hits != 0 {
					j := B3LaneMaskFirstLane(hits)
					hits &= hits - 1
					stack.Push(b3RefPair{A: nodeA.Children[i], B: nodeB.Children[j]})
				}
			}
		}
	}

	return results
}

func (tree *B3BundleTree) GetSelfOverlapsViaQueries(results []B3Pair) []B3Pair {
	return tree.selfOverlapsViaQueries(0, len(tree.M_leaves), results)
}

func (tree *B3BundleTree) selfOverlapsViaQueries(start int, end int, results []B3Pair) []B3Pair {
	for leafIndex := start; leafIndex < end; leafIndex++ {
		tree.Query(tree.leafBounds(leafIndex), func(other int) bool {
			if other > leafIndex {
				results = append(results, B3Pair{LeafA: leafIndex, LeafB: other})
			}
			return true
		})
	}
	return results
}

func (tree *B3BundleTree) GetSelfOverlapsParallel(workers int, results []B3Pair) ([]B3Pair, error) {
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
