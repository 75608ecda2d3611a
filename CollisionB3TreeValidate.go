package box3d

import (
	"fmt"
	"io"
	"strings"
)

/// Walk the whole tree and panic on the first broken invariant: dense and
/// consistent leaf registry, root at level 0 node 0, every non-root node
/// with at least two children, parent links, cleared unused slots, cached
/// leaf counts, no empty level.
///
/// Debug builds (tag box3d_debug) call this after every mutation. Release
/// builds never do, so there a broken tree is not reported and only shows
/// up as wrong query results. Tests should call it explicitly.
func (tree *B3Tree) Validate() {
	B3Assertf(len(tree.M_levels) > 0 && len(tree.M_levels[0].Nodes) == 1,
		"box3d: the root level must hold exactly one node")
	B3Assertf(tree.M_levels[0].Nodes[0].Parent == B3_nullNode, "box3d: the root has a parent")

	leafRefs := 0
	for level := range tree.M_levels {
		nodes := tree.M_levels[level].Nodes
		B3Assertf(len(nodes) > 0, "box3d: level %d is empty", level)

		for index := range nodes {
			node := &nodes[index]
			B3Assertf(node.ChildCount >= 0 && node.ChildCount <= tree.M_width,
				"box3d: node %d at level %d has %d children", index, level, node.ChildCount)

			if level > 0 {
				B3Assertf(node.ChildCount >= 2,
					"box3d: node %d at level %d has %d children", index, level, node.ChildCount)
				parent := &tree.M_levels[level-1].Nodes[node.Parent]
				B3Assertf(parent.Children[node.IndexInParent] == MakeB3InternalRef(index),
					"box3d: node %d at level %d is not referenced by its parent", index, level)
			}

			for i := node.ChildCount; i < B3_maxChildren; i++ {
				B3Assertf(node.Children[i].IsEmpty() && node.Bounds[i].IsEmpty() && node.LeafCounts[i] == 0,
					"box3d: unused slot %d of node %d at level %d is not cleared", i, index, level)
			}

			for i := 0; i < node.ChildCount; i++ {
				child := node.Children[i]
				switch child.Kind {
				case B3ChildKind_Leaf:
					leafRefs++
					B3Assertf(child.Index >= 0 && child.Index < len(tree.M_leaves),
						"box3d: leaf %d outside [0, %d)", child.Index, len(tree.M_leaves))
					B3Assertf(tree.M_leaves[child.Index] == B3Leaf{Level: level, Node: index, Child: i},
						"box3d: leaf %d registry entry does not point at slot %d of node %d at level %d",
						child.Index, i, index, level)
					B3Assertf(node.LeafCounts[i] == 1, "box3d: leaf slot with leaf count %d", node.LeafCounts[i])

				case B3ChildKind_Internal:
					B3Assertf(level+1 < len(tree.M_levels) && child.Index >= 0 && child.Index < len(tree.M_levels[level+1].Nodes),
						"box3d: node %d at level %d references missing node %d", index, level, child.Index)
					childNode := &tree.M_levels[level+1].Nodes[child.Index]
					B3Assertf(childNode.Parent == index && childNode.IndexInParent == i,
						"box3d: node %d at level %d has a stale parent link", child.Index, level+1)
					B3Assertf(node.LeafCounts[i] == childNode.ComputeLeafCount(),
						"box3d: cached leaf count %d of slot %d of node %d at level %d, expected %d",
						node.LeafCounts[i], i, index, level, childNode.ComputeLeafCount())

				default:
					B3Assertf(false, "box3d: empty child in occupied slot %d of node %d at level %d", i, index, level)
				}
			}
		}
	}

	B3Assertf(leafRefs == len(tree.M_leaves),
		"box3d: %d leaf references for %d leaves", leafRefs, len(tree.M_leaves))
	for leafIndex, leaf := range tree.M_leaves {
		slot := tree.M_levels[leaf.Level].Nodes[leaf.Node].Children[leaf.Child]
		B3Assertf(slot == MakeB3LeafRef(leafIndex),
			"box3d: leaf %d registry entry points at %v", leafIndex, slot)
	}
}

/// Panic unless every internal slot holds exactly the union of what is
/// below it. Holds after Refit (and after Add/RemoveAt when no leaf bounds
/// were changed in between).
func (tree *B3Tree) ValidateBounds() {
	for level := 0; level < len(tree.M_levels)-1; level++ {
		for index := range tree.M_levels[level].Nodes {
			node := &tree.M_levels[level].Nodes[index]
			for i := 0; i < node.ChildCount; i++ {
				if !node.Children[i].IsInternal() {
					continue
				}
				expected := tree.computeSubtreeBounds(level+1, node.Children[i].Index)
				B3Assertf(node.Bounds[i] == expected,
					"box3d: slot %d of node %d at level %d holds %v, expected %v",
					i, index, level, node.Bounds[i], expected)
			}
		}
	}
}

// Union of the leaf bounds under a node, ignoring the cached internal bounds.
func (tree *B3Tree) computeSubtreeBounds(level int, nodeIndex int) B3BoundingBox {
	node := &tree.M_levels[level].Nodes[nodeIndex]
	res := MakeB3EmptyBoundingBox()
	for i := 0; i < node.ChildCount; i++ {
		if node.Children[i].IsLeaf() {
			res.CombineInPlace(node.Bounds[i])
		} else {
			res.CombineInPlace(tree.computeSubtreeBounds(level+1, node.Children[i].Index))
		}
	}
	return res
}

/// Write the node store level by level, one line per occupied slot.
func (tree *B3Tree) Dump(w io.Writer) {
	fmt.Fprintf(w, "tree width=%d leaves=%d depth=%d\n", tree.M_width, len(tree.M_leaves), tree.GetMaximumDepth())
	for level := range tree.M_levels {
		for index := range tree.M_levels[level].Nodes {
			node := &tree.M_levels[level].Nodes[index]
			fmt.Fprintf(w, "level %d node %d parent %d/%d children %d\n",
				level, index, node.Parent, node.IndexInParent, node.ChildCount)
			for i := 0; i < node.ChildCount; i++ {
				fmt.Fprintf(w, "  [%d] %v leaves=%d min=%s max=%s\n",
					i, node.Children[i], node.LeafCounts[i], B3Vec3String(node.Bounds[i].Min), B3Vec3String(node.Bounds[i].Max))
			}
		}
	}
}

func (tree *B3Tree) String() string {
	var sb strings.Builder
	tree.Dump(&sb)
	return sb.String()
}
