package box3d

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

/// A node of the bundle tree. The bounds of all B3_laneCount children sit
/// in struct-of-arrays lanes so one wide test covers every child. Unused
/// lanes hold the empty box, which intersects nothing.
type B3BundleNode struct {
	Bounds     B3BoundingBoxWide
	Children   [B3_laneCount]B3ChildRef
	LeafCounts [B3_laneCount]int
	ChildCount int

	Parent        int
	IndexInParent int
}

func MakeB3BundleNode() B3BundleNode {
	node := B3BundleNode{
		Bounds:        MakeB3BoundingBoxWide(),
		Parent:        B3_nullNode,
		IndexInParent: B3_nullNode,
	}
	for i := range node.Children {
		node.Children[i] = B3EmptyRef
	}
	return node
}

func (node *B3BundleNode) clearSlot(slot int) {
	node.Bounds.ClearLane(slot)
	node.Children[slot] = B3EmptyRef
	node.LeafCounts[slot] = 0
}

func (node *B3BundleNode) occupied() B3LaneMask {
	return B3LaneMaskFirst(node.ChildCount)
}

func (node *B3BundleNode) ComputeBounds() B3BoundingBox {
	return node.Bounds.Reduce(node.occupied())
}

func (node *B3BundleNode) ComputeLeafCount() int {
	count := 0
	for i := 0; i < node.ChildCount; i++ {
		count += node.LeafCounts[i]
	}
	return count
}

/// The vectorized layout of the broad-phase tree: every node has up to
/// B3_laneCount children whose bounds are tested together. Nodes live in
/// one flat array with the root at index 0, so unlike B3Tree a node's index
/// says nothing about its depth and subtrees can be spliced anywhere.
///
/// Same concurrency rules as B3Tree.
type B3BundleTree struct {
	M_nodes  []B3BundleNode
	M_leaves []B3Leaf

	M_refinementBudget int
	M_fallbackGroups   int

	M_log logrus.FieldLogger
}

func NewB3BundleTree(def B3TreeDef) (*B3BundleTree, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	tree := &B3BundleTree{
		M_nodes:            make([]B3BundleNode, 0, def.InitialNodeCapacity),
		M_leaves:           make([]B3Leaf, 0, def.InitialLeafCapacity),
		M_refinementBudget: def.RefinementBudget,
		M_fallbackGroups:   def.StreamingFallbackGroups,
		M_log:              def.logger(),
	}

	root := tree.allocateNode()
	B3Assert(root == 0)

	return tree, nil
}

func MustNewB3BundleTree(def B3TreeDef) *B3BundleTree {
	tree, err := NewB3BundleTree(def)
	if err != nil {
		panic(err)
	}
	return tree
}

func (tree *B3BundleTree) GetLeafCount() int {
	return len(tree.M_leaves)
}

func (tree *B3BundleTree) GetNodeCount() int {
	return len(tree.M_nodes)
}

/// Depth of the deepest node, 0 when only the root exists. Computed by
/// walking the tree.
func (tree *B3BundleTree) GetMaximumDepth() int {
	return tree.ComputeHeight(0)
}

// Compute the height of a sub-tree.
func (tree *B3BundleTree) ComputeHeight(nodeIndex int) int {
	B3Assert(0 <= nodeIndex && nodeIndex < len(tree.M_nodes))
	node := &tree.M_nodes[nodeIndex]

	height := 0
	for i := 0; i < node.ChildCount; i++ {
		if node.Children[i].IsInternal() {
			height = MaxInt(height, 1+tree.ComputeHeight(node.Children[i].Index))
		}
	}
	return height
}

func (tree *B3BundleTree) GetLeaf(leafIndex int) (B3Leaf, error) {
	if err := tree.checkLeafIndex(leafIndex); err != nil {
		return B3Leaf{}, err
	}
	return tree.M_leaves[leafIndex], nil
}

func (tree *B3BundleTree) GetLeafBounds(leafIndex int) (B3BoundingBox, error) {
	if err := tree.checkLeafIndex(leafIndex); err != nil {
		return MakeB3EmptyBoundingBox(), err
	}
	return tree.leafBounds(leafIndex), nil
}

func (tree *B3BundleTree) leafBounds(leafIndex int) B3BoundingBox {
	leaf := tree.M_leaves[leafIndex]
	return tree.M_nodes[leaf.Node].Bounds.GetLane(leaf.Child)
}

/// Overwrite the cached bounds of a leaf. Ancestors are stale until the
/// next Refit.
func (tree *B3BundleTree) SetLeafBounds(leafIndex int, bounds B3BoundingBox) error {
	if err := tree.checkLeafIndex(leafIndex); err != nil {
		return err
	}
	leaf := tree.M_leaves[leafIndex]
	tree.M_nodes[leaf.Node].Bounds.SetLane(leaf.Child, bounds)
	return nil
}

func (tree *B3BundleTree) checkLeafIndex(leafIndex int) error {
	if leafIndex < 0 || leafIndex >= len(tree.M_leaves) {
		return fmt.Errorf("%w: %d (leaf count %d)", ErrLeafIndexOutOfRange, leafIndex, len(tree.M_leaves))
	}
	return nil
}

// Allocate a node from the pool. Grow the pool if necessary.
func (tree *B3BundleTree) allocateNode() int {
	if len(tree.M_nodes) == cap(tree.M_nodes) && len(tree.M_nodes) > 0 {
		tree.M_log.WithField("capacity", 2*cap(tree.M_nodes)).Debug("bundle node pool grown")
	}
	tree.M_nodes = append(tree.M_nodes, MakeB3BundleNode())
	return len(tree.M_nodes) - 1
}

// Return a node to the pool; the last node takes its place. Returns the
// index the last node had, so callers holding it can follow the move.
func (tree *B3BundleTree) removeNode(index int) int {
	B3Assert(index > 0)
	last := len(tree.M_nodes) - 1
	if index != last {
		tree.M_nodes[index] = tree.M_nodes[last]
		moved := &tree.M_nodes[index]
		B3Assert(moved.Parent != index)
		tree.M_nodes[moved.Parent].Children[moved.IndexInParent] = MakeB3InternalRef(index)
		for i := 0; i < moved.ChildCount; i++ {
			tree.updateBackReference(index, i)
		}
	}
	tree.M_nodes[last] = MakeB3BundleNode()
	tree.M_nodes = tree.M_nodes[:last]
	return last
}

func (tree *B3BundleTree) updateBackReference(nodeIndex int, slot int) {
	child := tree.M_nodes[nodeIndex].Children[slot]
	switch child.Kind {
	case B3ChildKind_Leaf:
		tree.M_leaves[child.Index] = B3Leaf{Node: nodeIndex, Child: slot}
	case B3ChildKind_Internal:
		childNode := &tree.M_nodes[child.Index]
		childNode.Parent = nodeIndex
		childNode.IndexInParent = slot
	default:
		B3Assertf(false, "box3d: empty child in occupied slot %d of bundle node %d", slot, nodeIndex)
	}
}
