package box3d

/// Insert a leaf and return its index. Same placement rule as B3Tree.Add,
/// with the growth of all children computed in one wide pass.
func (tree *B3BundleTree) Add(bounds B3BoundingBox) int {
	leafIndex := len(tree.M_leaves)
	tree.M_leaves = append(tree.M_leaves, B3Leaf{})

	nodeIndex := 0
	for {
		node := &tree.M_nodes[nodeIndex]

		if node.ChildCount < B3_laneCount {
			slot := node.ChildCount
			node.Bounds.SetLane(slot, bounds)
			node.Children[slot] = MakeB3LeafRef(leafIndex)
			node.LeafCounts[slot] = 1
			node.ChildCount++
			tree.M_leaves[leafIndex] = B3Leaf{Node: nodeIndex, Child: slot}
			break
		}

		best := node.chooseInsertionChild(bounds)
		child := node.Children[best]
		oldBounds := node.Bounds.GetLane(best)
		node.Bounds.SetLane(best, oldBounds.Union(bounds))
		node.LeafCounts[best]++

		if child.IsInternal() {
			nodeIndex = child.Index
			continue
		}

		// The pool may move while allocating, so node is not used past here.
		newIndex := tree.allocateNode()
		newNode := &tree.M_nodes[newIndex]
		newNode.Parent = nodeIndex
		newNode.IndexInParent = best
		newNode.Bounds.SetLane(0, oldBounds)
		newNode.Children[0] = child
		newNode.LeafCounts[0] = 1
		newNode.Bounds.SetLane(1, bounds)
		newNode.Children[1] = MakeB3LeafRef(leafIndex)
		newNode.LeafCounts[1] = 1
		newNode.ChildCount = 2

		tree.M_leaves[child.Index] = B3Leaf{Node: newIndex, Child: 0}
		tree.M_leaves[leafIndex] = B3Leaf{Node: newIndex, Child: 1}
		tree.M_nodes[nodeIndex].Children[best] = MakeB3InternalRef(newIndex)
		break
	}

	if B3DEBUG {
		tree.Validate()
	}

	return leafIndex
}

func (node *B3BundleNode) chooseInsertionChild(bounds B3BoundingBox) int {
	merged := node.Bounds.Union(B3BoundingBoxWideBroadcast(bounds))
	mergedArea := merged.SurfaceArea()
	oldArea := node.Bounds.SurfaceArea()

	best := 0
	bestCost := B3_maxFloat
	for i := 0; i < node.ChildCount; i++ {
		cost := mergedArea[i]
		if node.Children[i].IsInternal() {
			cost -= oldArea[i]
		}
		if cost < bestCost {
			best = i
			bestCost = cost
		}
	}
	return best
}
