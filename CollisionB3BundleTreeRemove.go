package box3d

/// Remove a leaf, moving the last leaf into its index. See B3Tree.RemoveAt.
func (tree *B3BundleTree) RemoveAt(leafIndex int) (B3LeafMove, error) {
	if err := tree.checkLeafIndex(leafIndex); err != nil {
		return B3LeafMove{}, err
	}

	leaf := tree.M_leaves[leafIndex]
	tree.removeLeafFromNode(leaf.Node, leaf.Child)

	last := len(tree.M_leaves) - 1
	if leafIndex != last {
		moved := tree.M_leaves[last]
		tree.M_leaves[leafIndex] = moved
		tree.M_nodes[moved.Node].Children[moved.Child] = MakeB3LeafRef(leafIndex)
	}
	tree.M_leaves = tree.M_leaves[:last]

	if B3DEBUG {
		tree.Validate()
	}

	return B3LeafMove{OriginalIndex: last, NewIndex: leafIndex}, nil
}

func (tree *B3BundleTree) removeLeafFromNode(nodeIndex int, slot int) {
	node := &tree.M_nodes[nodeIndex]
	B3Assert(node.Children[slot].IsLeaf())

	if nodeIndex == 0 || node.ChildCount > 2 {
		last := node.ChildCount - 1
		if slot != last {
			node.Bounds.CopyLane(slot, &node.Bounds, last)
			node.Children[slot] = node.Children[last]
			node.LeafCounts[slot] = node.LeafCounts[last]
			tree.updateBackReference(nodeIndex, slot)
		}
		node.clearSlot(last)
		node.ChildCount--
		tree.refitAncestorsAfterRemoval(nodeIndex)
		return
	}

	B3Assertf(node.ChildCount == 2, "box3d: bundle node %d has %d children", nodeIndex, node.ChildCount)

	// Collapse: the other child takes the owner's place in the parent. In
	// the flat layout that works for internal survivors too, their subtree
	// just ends up one level shallower.
	survivorSlot := 1 - slot
	parentIndex := node.Parent
	parentSlot := node.IndexInParent

	parent := &tree.M_nodes[parentIndex]
	parent.Children[parentSlot] = node.Children[survivorSlot]
	parent.Bounds.SetLane(parentSlot, node.Bounds.GetLane(survivorSlot))
	parent.LeafCounts[parentSlot] = node.LeafCounts[survivorSlot]
	tree.updateBackReference(parentIndex, parentSlot)

	if moved := tree.removeNode(nodeIndex); moved == parentIndex {
		parentIndex = nodeIndex
	}
	tree.refitAncestorsAfterRemoval(parentIndex)
}

func (tree *B3BundleTree) refitAncestorsAfterRemoval(nodeIndex int) {
	for nodeIndex != 0 {
		node := &tree.M_nodes[nodeIndex]
		parent := &tree.M_nodes[node.Parent]
		parent.Bounds.SetLane(node.IndexInParent, node.ComputeBounds())
		parent.LeafCounts[node.IndexInParent]--
		nodeIndex = node.Parent
	}
}
