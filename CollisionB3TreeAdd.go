package box3d

/// Insert a leaf and return its index, which is always the current leaf
/// count. The box goes into the first node on the way down that has a free
/// slot; a full node passes it to the child whose surface area grows the
/// least, and a leaf child chosen that way is split into a new node one
/// level deeper holding both leaves.
func (tree *B3Tree) Add(bounds B3BoundingBox) int {
	leafIndex := len(tree.M_leaves)
	tree.M_leaves = append(tree.M_leaves, B3Leaf{})

	level := 0
	nodeIndex := 0
	for {
		node := &tree.M_levels[level].Nodes[nodeIndex]

		if node.ChildCount < tree.M_width {
			slot := node.ChildCount
			node.Bounds[slot] = bounds
			node.Children[slot] = MakeB3LeafRef(leafIndex)
			node.LeafCounts[slot] = 1
			node.ChildCount++
			tree.M_leaves[leafIndex] = B3Leaf{Level: level, Node: nodeIndex, Child: slot}
			break
		}

		best := tree.chooseInsertionChild(node, bounds)
		child := node.Children[best]
		oldBounds := node.Bounds[best]

		// Everything below best now holds the new leaf.
		node.Bounds[best].CombineInPlace(bounds)
		node.LeafCounts[best]++

		if child.IsInternal() {
			level++
			nodeIndex = child.Index
			continue
		}

		// Split the leaf child into a new node with both leaves.
		newIndex := tree.allocateNode(level + 1)
		newNode := &tree.M_levels[level+1].Nodes[newIndex]
		newNode.Parent = nodeIndex
		newNode.IndexInParent = best

		newNode.Bounds[0] = oldBounds
		newNode.Children[0] = child
		newNode.LeafCounts[0] = 1
		newNode.Bounds[1] = bounds
		newNode.Children[1] = MakeB3LeafRef(leafIndex)
		newNode.LeafCounts[1] = 1
		newNode.ChildCount = 2

		tree.M_leaves[child.Index] = B3Leaf{Level: level + 1, Node: newIndex, Child: 0}
		tree.M_leaves[leafIndex] = B3Leaf{Level: level + 1, Node: newIndex, Child: 1}
		tree.M_levels[level].Nodes[nodeIndex].Children[best] = MakeB3InternalRef(newIndex)
		break
	}

	if B3DEBUG {
		tree.Validate()
	}

	return leafIndex
}

// Pick the child of a full node that absorbs the new box most cheaply.
// Descending into an internal child costs the growth of its surface area;
// a leaf child has to become a new node, which costs the whole merged area.
func (tree *B3Tree) chooseInsertionChild(node *B3TreeNode, bounds B3BoundingBox) int {
	best := 0
	bestCost := B3_maxFloat
	for i := 0; i < node.ChildCount; i++ {
		merged := node.Bounds[i].Union(bounds)
		cost := merged.SurfaceArea()
		if node.Children[i].IsInternal() {
			cost -= node.Bounds[i].SurfaceArea()
		}

		if cost < bestCost {
			best = i
			bestCost = cost
		}
	}
	return best
}
