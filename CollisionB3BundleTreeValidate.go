package box3d

import (
	"fmt"
	"io"
	"strings"
)

/// Walk the whole tree and panic on the first broken invariant. Checks the
/// same properties as B3Tree.Validate, plus that every node in the array
/// is reachable from the root.
///
/// Only debug builds (tag box3d_debug) run this after every mutation.
func (tree *B3BundleTree) Validate() {
	B3Assertf(len(tree.M_nodes) > 0, "box3d: bundle tree has no root")
	B3Assertf(tree.M_nodes[0].Parent == B3_nullNode, "box3d: the root has a parent")

	leafRefs := 0
	for index := range tree.M_nodes {
		node := &tree.M_nodes[index]
		B3Assertf(node.ChildCount >= 0 && node.ChildCount <= B3_laneCount,
			"box3d: bundle node %d has %d children", index, node.ChildCount)

		if index > 0 {
			B3Assertf(node.ChildCount >= 2, "box3d: bundle node %d has %d children", index, node.ChildCount)
			B3Assertf(node.Parent >= 0 && node.Parent < len(tree.M_nodes) && node.Parent != index,
				"box3d: bundle node %d has parent %d", index, node.Parent)
			parent := &tree.M_nodes[node.Parent]
			B3Assertf(parent.Children[node.IndexInParent] == MakeB3InternalRef(index),
				"box3d: bundle node %d is not referenced by its parent", index)
		}

		for i := node.ChildCount; i < B3_laneCount; i++ {
			B3Assertf(node.Children[i].IsEmpty() && node.Bounds.GetLane(i).IsEmpty() && node.LeafCounts[i] == 0,
				"box3d: unused slot %d of bundle node %d is not cleared", i, index)
		}

		for i := 0; i < node.ChildCount; i++ {
			child := node.Children[i]
			switch child.Kind {
			case B3ChildKind_Leaf:
				leafRefs++
				B3Assertf(child.Index >= 0 && child.Index < len(tree.M_leaves),
					"box3d: leaf %d outside [0, %d)", child.Index, len(tree.M_leaves))
				B3Assertf(tree.M_leaves[child.Index] == B3Leaf{Node: index, Child: i},
					"box3d: leaf %d registry entry does not point at slot %d of bundle node %d", child.Index, i, index)
				B3Assertf(node.LeafCounts[i] == 1, "box3d: leaf slot with leaf count %d", node.LeafCounts[i])

			case B3ChildKind_Internal:
				B3Assertf(child.Index > 0 && child.Index < len(tree.M_nodes),
					"box3d: bundle node %d references missing node %d", index, child.Index)
				childNode := &tree.M_nodes[child.Index]
				B3Assertf(childNode.Parent == index && childNode.IndexInParent == i,
					"box3d: bundle node %d has a stale parent link", child.Index)
				B3Assertf(node.LeafCounts[i] == childNode.ComputeLeafCount(),
					"box3d: cached leaf count %d of slot %d of bundle node %d, expected %d",
					node.LeafCounts[i], i, index, childNode.ComputeLeafCount())

			default:
				B3Assertf(false, "box3d: empty child in occupied slot %d of bundle node %d", i, index)
			}
		}
	}

	B3Assertf(leafRefs == len(tree.M_leaves),
		"box3d: %d leaf references for %d leaves", leafRefs, len(tree.M_leaves))
	for leafIndex, leaf := range tree.M_leaves {
		slot := tree.M_nodes[leaf.Node].Children[leaf.Child]
		B3Assertf(slot == MakeB3LeafRef(leafIndex), "box3d: leaf %d registry entry points at %v", leafIndex, slot)
	}

	reachable := tree.countReachable(0)
	B3Assertf(reachable == len(tree.M_nodes),
		"box3d: %d of %d bundle nodes reachable from the root", reachable, len(tree.M_nodes))
}

func (tree *B3BundleTree) countReachable(nodeIndex int) int {
	node := &tree.M_nodes[nodeIndex]
	count := 1
	for i := 0; i < node.ChildCount; i++ {
		if node.Children[i].IsInternal() {
			count += tree.countReachable(node.Children[i].Index)
		}
	}
	return count
}

/// Panic unless every internal lane holds exactly the union of the leaves
/// below it.
func (tree *B3BundleTree) ValidateBounds() {
	for index := range tree.M_nodes {
		node := &tree.M_nodes[index]
		for i := 0; i < node.ChildCount; i++ {
			if !node.Children[i].IsInternal() {
				continue
			}
			expected := tree.computeSubtreeBounds(node.Children[i].Index)
			B3Assertf(node.Bounds.GetLane(i) == expected,
				"box3d: lane %d of bundle node %d holds %v, expected %v", i, index, node.Bounds.GetLane(i), expected)
		}
	}
}

func (tree *B3BundleTree) computeSubtreeBounds(nodeIndex int) B3BoundingBox {
	node := &tree.M_nodes[nodeIndex]
	res := MakeB3EmptyBoundingBox()
	for i := 0; i < node.ChildCount; i++ {
		if node.Children[i].IsLeaf() {
			res.CombineInPlace(node.Bounds.GetLane(i))
		} else {
			res.CombineInPlace(tree.computeSubtreeBounds(node.Children[i].Index))
		}
	}
	return res
}

func (tree *B3BundleTree) Dump(w io.Writer) {
	fmt.Fprintf(w, "bundle tree lanes=%d leaves=%d depth=%d\n", B3_laneCount, len(tree.M_leaves), tree.GetMaximumDepth())
	for index := range tree.M_nodes {
		node := &tree.M_nodes[index]
		fmt.Fprintf(w, "node %d parent %d/%d children %d\n", index, node.Parent, node.IndexInParent, node.ChildCount)
		for i := 0; i < node.ChildCount; i++ {
			box := node.Bounds.GetLane(i)
			fmt.Fprintf(w, "  [%d] %v leaves=%d min=%s max=%s\n",
				i, node.Children[i], node.LeafCounts[i], B3Vec3String(box.Min), B3Vec3String(box.Max))
		}
	}
}

func (tree *B3BundleTree) String() string {
	var sb strings.Builder
	tree.Dump(&sb)
	return sb.String()
}
