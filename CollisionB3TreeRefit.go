package box3d

/// Recompute every internal bound from the leaf bounds, deepest level
/// first. Topology is unchanged. Call once per step after the leaf bounds
/// were updated and before querying.
func (tree *B3Tree) Refit() {
	for level := len(tree.M_levels) - 2; level >= 0; level-- {
		tree.refitNodes(level, 0, len(tree.M_levels[level].Nodes))
	}
}

/// Refit with each level split across workers. Nodes of one level only
/// read the level below, so the ranges are independent.
func (tree *B3Tree) RefitParallel(workers int) error {
	for level := len(tree.M_levels) - 2; level >= 0; level-- {
		level := level
		err := B3Task(workers, len(tree.M_levels[level].Nodes), func(worker, start, end int) error {
			tree.refitNodes(level, start, end)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (tree *B3Tree) refitNodes(level int, start int, end int) {
	nodes := tree.M_levels[level].Nodes
	children := tree.M_levels[level+1].Nodes
	for n := start; n < end; n++ {
		node := &nodes[n]
		for i := 0; i < node.ChildCount; i++ {
			if node.Children[i].IsInternal() {
				node.Bounds[i] = children[node.Children[i].Index].ComputeBounds()
			}
		}
	}
}

/// Refit, then spend the refinement budget on local topology improvements.
/// Each call visits the next budget nodes in level order, starting where
/// frameIndex points, so successive frames sweep the whole tree.
func (tree *B3Tree) RefitAndRefine(frameIndex int) {
	tree.Refit()

	nodeCount := tree.GetNodeCount()
	budget := MinInt(tree.M_refinementBudget, nodeCount)
	if budget == 0 {
		return
	}

	start := int((uint64(frameIndex) * uint64(budget)) % uint64(nodeCount))
	level, index := tree.locateNode(start)
	swaps := 0
	for visited := 0; visited < budget; visited++ {
		if tree.refineNode(level, index) {
			swaps++
		}

		index++
		if index == len(tree.M_levels[level].Nodes) {
			index = 0
			level++
			if level == len(tree.M_levels) {
				level = 0
			}
		}
	}

	if swaps > 0 {
		tree.M_log.WithField("swaps", swaps).Debug("tree refined")
	}

	if B3DEBUG {
		tree.Validate()
	}
}

// Level and index of the n-th node in level order.
func (tree *B3Tree) locateNode(n int) (int, int) {
	for level := range tree.M_levels {
		count := len(tree.M_levels[level].Nodes)
		if n < count {
			return level, n
		}
		n -= count
	}
	B3Assert(false)
	return 0, 0
}

// Relative gain below which a swap is not worth it; keeps rounding noise
// from flipping the same pair back and forth.
const b3_refineTolerance = 1e-9

// Try the best exchange of one grandchild between two internal children of
// the node. Grandchildren keep their depth, so nothing has to change level.
// Applied only when the two children's summed surface area shrinks.
func (tree *B3Tree) refineNode(level int, nodeIndex int) bool {
	if level+1 >= len(tree.M_levels) {
		return false
	}

	node := &tree.M_levels[level].Nodes[nodeIndex]
	children := tree.M_levels[level+1].Nodes

	bestGain := 0.0
	bestA, bestB, bestI, bestJ := -1, -1, -1, -1

	var excludedA, excludedB [B3_maxChildren]B3BoundingBox
	for a := 0; a < node.ChildCount; a++ {
		if !node.Children[a].IsInternal() {
			continue
		}
		nodeA := &children[node.Children[a].Index]
		computeExcludedUnions(nodeA.Bounds[:nodeA.ChildCount], excludedA[:])
		areaA := node.Bounds[a].SurfaceArea()

		for b := a + 1; b < node.ChildCount; b++ {
			if !node.Children[b].IsInternal() {
				continue
			}
			nodeB := &children[node.Children[b].Index]
			computeExcludedUnions(nodeB.Bounds[:nodeB.ChildCount], excludedB[:])
			current := areaA + node.Bounds[b].SurfaceArea()

			for i := 0; i < nodeA.ChildCount; i++ {
				for j := 0; j < nodeB.ChildCount; j++ {
					swapped := excludedA[i].Union(nodeB.Bounds[j]).SurfaceArea() +
						excludedB[j].Union(nodeA.Bounds[i]).SurfaceArea()
					if gain := current - swapped; gain > bestGain && gain > current*b3_refineTolerance {
						bestGain = gain
						bestA, bestB, bestI, bestJ = a, b, i, j
					}
				}
			}
		}
	}

	if bestA < 0 {
		return false
	}

	indexA := node.Children[bestA].Index
	indexB := node.Children[bestB].Index
	nodeA := &children[indexA]
	nodeB := &children[indexB]

	nodeA.Bounds[bestI], nodeB.Bounds[bestJ] = nodeB.Bounds[bestJ], nodeA.Bounds[bestI]
	nodeA.Children[bestI], nodeB.Children[bestJ] = nodeB.Children[bestJ], nodeA.Children[bestI]
	nodeA.LeafCounts[bestI], nodeB.LeafCounts[bestJ] = nodeB.LeafCounts[bestJ], nodeA.LeafCounts[bestI]
	tree.updateBackReference(level+1, indexA, bestI)
	tree.updateBackReference(level+1, indexB, bestJ)

	node.Bounds[bestA] = nodeA.ComputeBounds()
	node.Bounds[bestB] = nodeB.ComputeBounds()
	node.LeafCounts[bestA] = nodeA.ComputeLeafCount()
	node.LeafCounts[bestB] = nodeB.ComputeLeafCount()
	return true
}

// excluded[i] = union of all boxes but boxes[i].
func computeExcludedUnions(boxes []B3BoundingBox, excluded []B3BoundingBox) {
	n := len(boxes)
	prefix := MakeB3EmptyBoundingBox()
	for i := 0; i < n; i++ {
		excluded[i] = prefix
		prefix.CombineInPlace(boxes[i])
	}
	suffix := MakeB3EmptyBoundingBox()
	for i := n - 1; i >= 0; i-- {
		excluded[i].CombineInPlace(suffix)
		suffix.CombineInPlace(boxes[i])
	}
}
