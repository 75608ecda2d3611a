package box3d

import (
	"golang.org/x/exp/slices"
)

/// A node addressed by depth and index within its level.
type b3NodeLocation struct {
	Level int
	Index int
}

/// Remove a leaf. To keep leaf indices dense the last leaf is moved into
/// the freed index; the returned move tells the caller which index changed
/// (OriginalIndex is the old last index, NewIndex the removed one).
func (tree *B3Tree) RemoveAt(leafIndex int) (B3LeafMove, error) {
	if err := tree.checkLeafIndex(leafIndex); err != nil {
		return B3LeafMove{}, err
	}

	// Structural removal first: it may rewrite registry entries of other
	// leaves, including the last one which is about to move.
	leaf := tree.M_leaves[leafIndex]
	tree.removeLeafFromNode(leaf.Level, leaf.Node, leaf.Child)

	last := len(tree.M_leaves) - 1
	if leafIndex != last {
		moved := tree.M_leaves[last]
		tree.M_leaves[leafIndex] = moved
		tree.M_levels[moved.Level].Nodes[moved.Node].Children[moved.Child] = MakeB3LeafRef(leafIndex)
	}
	tree.M_leaves = tree.M_leaves[:last]

	if B3DEBUG {
		tree.Validate()
	}

	return B3LeafMove{OriginalIndex: last, NewIndex: leafIndex}, nil
}

func (tree *B3Tree) removeLeafFromNode(level int, nodeIndex int, slot int) {
	node := &tree.M_levels[level].Nodes[nodeIndex]
	B3Assert(node.Children[slot].IsLeaf())

	if level == 0 || node.ChildCount > 2 {
		tree.removeSlot(level, nodeIndex, slot)
		tree.refitAncestorsAfterRemoval(level, nodeIndex)
		return
	}

	// The owner would be left with one child; it has to go.
	B3Assertf(node.ChildCount == 2,
		"box3d: node %d at level %d has %d children", nodeIndex, level, node.ChildCount)

	survivorSlot := 1 - slot
	survivor := node.Children[survivorSlot]

	if survivor.IsLeaf() {
		survivorBounds := node.Bounds[survivorSlot]
		parentLevel := level - 1
		parentIndex := node.Parent
		parentSlot := node.IndexInParent

		parent := &tree.M_levels[parentLevel].Nodes[parentIndex]
		parent.Children[parentSlot] = survivor
		parent.Bounds[parentSlot] = survivorBounds
		parent.LeafCounts[parentSlot] = 1
		tree.M_leaves[survivor.Index] = B3Leaf{Level: parentLevel, Node: parentIndex, Child: parentSlot}

		tree.removeNode(level, nodeIndex)
		tree.refitAncestorsAfterRemoval(parentLevel, parentIndex)
		return
	}

	tree.pullUpInto(level, nodeIndex, survivor.Index)
	tree.refitAncestorsAfterRemoval(level, nodeIndex)
}

// Remove a child by moving the last child into its slot.
func (tree *B3Tree) removeSlot(level int, nodeIndex int, slot int) {
	node := &tree.M_levels[level].Nodes[nodeIndex]
	last := node.ChildCount - 1
	if slot != last {
		node.Bounds[slot] = node.Bounds[last]
		node.Children[slot] = node.Children[last]
		node.LeafCounts[slot] = node.LeafCounts[last]
		tree.updateBackReference(level, nodeIndex, slot)
	}
	node.clearSlot(last)
	node.ChildCount--
}

// Walk from a node to the root. Each ancestor slot on the way gets the
// union of the node below it and loses one leaf.
func (tree *B3Tree) refitAncestorsAfterRemoval(level int, nodeIndex int) {
	for level > 0 {
		node := &tree.M_levels[level].Nodes[nodeIndex]
		parent := &tree.M_levels[level-1].Nodes[node.Parent]
		parent.Bounds[node.IndexInParent] = node.ComputeBounds()
		parent.LeafCounts[node.IndexInParent]--

		nodeIndex = node.Parent
		level--
	}
}

// Replace the owner's content with that of its internal child survivor.
// Every node under the survivor moves up one level with it: the subtree is
// copied first, with each copied child's back-reference set as it is
// written, and the old nodes are deleted afterwards.
func (tree *B3Tree) pullUpInto(level int, ownerIndex int, survivorIndex int) {
	survivor := tree.M_levels[level+1].Nodes[survivorIndex]

	owner := &tree.M_levels[level].Nodes[ownerIndex]
	owner.Bounds = survivor.Bounds
	owner.Children = survivor.Children
	owner.LeafCounts = survivor.LeafCounts
	owner.ChildCount = survivor.ChildCount

	dead := []b3NodeLocation{{Level: level + 1, Index: survivorIndex}}
	for i := 0; i < survivor.ChildCount; i++ {
		child := survivor.Children[i]
		if child.IsLeaf() {
			tree.M_leaves[child.Index] = B3Leaf{Level: level, Node: ownerIndex, Child: i}
			continue
		}
		newIndex := tree.pullUpSubtree(level+2, child.Index, ownerIndex, i, &dead)
		tree.M_levels[level].Nodes[ownerIndex].Children[i] = MakeB3InternalRef(newIndex)
	}

	tree.removeDeadNodes(dead)
}

// Copy the node at (level, index) and everything below it one level up,
// under the given parent slot. The originals are recorded in dead.
func (tree *B3Tree) pullUpSubtree(level int, index int, parentIndex int, parentSlot int, dead *[]b3NodeLocation) int {
	source := tree.M_levels[level].Nodes[index]
	*dead = append(*dead, b3NodeLocation{Level: level, Index: index})

	newIndex := tree.allocateNode(level - 1)
	copied := &tree.M_levels[level-1].Nodes[newIndex]
	*copied = source
	copied.Parent = parentIndex
	copied.IndexInParent = parentSlot

	for i := 0; i < source.ChildCount; i++ {
		child := source.Children[i]
		if child.IsLeaf() {
			tree.M_leaves[child.Index] = B3Leaf{Level: level - 1, Node: newIndex, Child: i}
			continue
		}
		childIndex := tree.pullUpSubtree(level+1, child.Index, newIndex, i, dead)
		tree.M_levels[level-1].Nodes[newIndex].Children[i] = MakeB3InternalRef(childIndex)
	}

	return newIndex
}

// Delete deepest levels first and, within a level, highest index first.
// That way the node moved into each hole is never one that is itself
// waiting to be deleted, and a level only empties once everything below it
// is gone.
func (tree *B3Tree) removeDeadNodes(dead []b3NodeLocation) {
	slices.SortFunc(dead, func(a, b b3NodeLocation) int {
		if a.Level != b.Level {
			return b.Level - a.Level
		}
		return b.Index - a.Index
	})
	for _, location := range dead {
		tree.removeNode(location.Level, location.Index)
	}
}
