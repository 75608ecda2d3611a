package box3d

/// Recompute every internal bound from the leaf bounds. Topology is
/// unchanged.
func (tree *B3BundleTree) Refit() {
	tree.refitNode(0)
}

/// Refit with the subtrees under the root's internal children handed out
/// to workers. The subtrees share no nodes; the root itself is updated
/// once every worker is done.
func (tree *B3BundleTree) RefitParallel(workers int) error {
	root := &tree.M_nodes[0]

	var slots [B3_laneCount]int
	count := 0
	for i := 0; i < root.ChildCount; i++ {
		if root.Children[i].IsInternal() {
			slots[count] = i
			count++
		}
	}

	var bounds [B3_laneCount]B3BoundingBox
	err := B3Task(workers, count, func(worker, start, end int) error {
		for k := start; k < end; k++ {
			bounds[k] = tree.refitNode(root.Children[slots[k]].Index)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for k := 0; k < count; k++ {
		root.Bounds.SetLane(slots[k], bounds[k])
	}
	return nil
}

func (tree *B3BundleTree) refitNode(nodeIndex int) B3BoundingBox {
	node := &tree.M_nodes[nodeIndex]
	for i := 0; i < node.ChildCount; i++ {
		if node.Children[i].IsInternal() {
			node.Bounds.SetLane(i, tree.refitNode(node.Children[i].Index))
		}
	}
	return node.ComputeBounds()
}

/// Refit, then try one rotation on each of the next budget nodes, starting
/// at a cursor derived from frameIndex. A rotation exchanges a child of a
/// node with a grandchild under one of its other children when that makes
/// the grandchild's new parent smaller. Depths change, which the flat node
/// array allows.
func (tree *B3BundleTree) RefitAndRefine(frameIndex int) {
	tree.Refit()

	nodeCount := len(tree.M_nodes)
	budget := MinInt(tree.M_refinementBudget, nodeCount)
	if budget == 0 {
		return
	}

	start := int((uint64(frameIndex) * uint64(budget)) % uint64(nodeCount))
	rotations := 0
	for visited := 0; visited < budget; visited++ {
		if tree.rotateNode((start + visited) % nodeCount) {
			rotations++
		}
	}

	if rotations > 0 {
		tree.M_log.WithField("rotations", rotations).Debug("bundle tree refined")
	}

	if B3DEBUG {
		tree.Validate()
	}
}

func (tree *B3BundleTree) rotateNode(nodeIndex int) bool {
	node := &tree.M_nodes[nodeIndex]
	occupied := node.occupied()

	bestGain := 0.0
	bestA, bestC, bestG := -1, -1, -1

	for a := 0; a < node.ChildCount; a++ {
		if !node.Children[a].IsInternal() {
			continue
		}
		childA := &tree.M_nodes[node.Children[a].Index]
		area := node.Bounds.GetLane(a).SurfaceArea()
		childOccupied := childA.occupied()

		for g := 0; g < childA.ChildCount; g++ {
			rest := childA.Bounds.Reduce(childOccupied &^ (1 << uint(g)))
			// Every other child of the node against grandchild g at once.
			candidates := B3BoundingBoxWideBroadcast(rest).Union(node.Bounds).SurfaceArea()
			for c := 0; c < node.ChildCount; c++ {
				if c == a || occupied&(1<<uint(c)) == 0 {
					continue
				}
				if gain := area - candidates[c]; gain > bestGain && gain > area*b3_refineTolerance {
					bestGain = gain
					bestA, bestC, bestG = a, c, g
				}
			}
		}
	}

	if bestA < 0 {
		return false
	}

	indexA := node.Children[bestA].Index
	childA := &tree.M_nodes[indexA]

	boxC := node.Bounds.GetLane(bestC)
	boxG := childA.Bounds.GetLane(bestG)
	node.Bounds.SetLane(bestC, boxG)
	childA.Bounds.SetLane(bestG, boxC)
	node.Children[bestC], childA.Children[bestG] = childA.Children[bestG], node.Children[bestC]
	node.LeafCounts[bestC], childA.LeafCounts[bestG] = childA.LeafCounts[bestG], node.LeafCounts[bestC]
	tree.updateBackReference(nodeIndex, bestC)
	tree.updateBackReference(indexA, bestG)

	node.Bounds.SetLane(bestA, childA.ComputeBounds())
	node.LeafCounts[bestA] = childA.ComputeLeafCount()
	return true
}
