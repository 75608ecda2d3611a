package box3d

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

/// A node of the scalar tree. Children occupy slots [0, ChildCount); the
/// remaining slots hold the empty box and B3EmptyRef. Bounds[i] is the
/// union of everything under child i, LeafCounts[i] the number of leaves
/// under it.
type B3TreeNode struct {
	Bounds     [B3_maxChildren]B3BoundingBox
	Children   [B3_maxChildren]B3ChildRef
	LeafCounts [B3_maxChildren]int
	ChildCount int

	/// Index of the parent in the previous level, B3_nullNode for the root.
	Parent        int
	IndexInParent int
}

func MakeB3TreeNode() B3TreeNode {
	node := B3TreeNode{
		Parent:        B3_nullNode,
		IndexInParent: B3_nullNode,
	}
	for i := 0; i < B3_maxChildren; i++ {
		node.clearSlot(i)
	}
	return node
}

func (node *B3TreeNode) clearSlot(slot int) {
	node.Bounds[slot] = MakeB3EmptyBoundingBox()
	node.Children[slot] = B3EmptyRef
	node.LeafCounts[slot] = 0
}

/// Union of the occupied slots.
func (node *B3TreeNode) ComputeBounds() B3BoundingBox {
	return B3BoundingBoxUnion(node.Bounds[:node.ChildCount]...)
}

func (node *B3TreeNode) ComputeLeafCount() int {
	count := 0
	for i := 0; i < node.ChildCount; i++ {
		count += node.LeafCounts[i]
	}
	return count
}

/// All nodes at one depth. Internal children of a node in level d are
/// indices into level d+1.
type B3TreeLevel struct {
	Nodes []B3TreeNode
}

/// A dynamic AABB tree broad-phase with up to Width children per node.
/// Nodes are grouped by depth: the node array of level d holds every node
/// at depth d, the root is node 0 of level 0. Leaves are dense, a removed
/// leaf is replaced by the last one (see RemoveAt).
///
/// Nodes are pooled and relocatable, so we use indices rather than pointers.
/// Mutations are not synchronized; queries may run concurrently with each
/// other but not with Add, RemoveAt, SetLeafBounds or Refit.
type B3Tree struct {
	M_levels []B3TreeLevel
	M_leaves []B3Leaf

	M_width            int
	M_nodeCapacity     int
	M_refinementBudget int

	M_log logrus.FieldLogger
}

func NewB3Tree(def B3TreeDef) (*B3Tree, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	tree := &B3Tree{
		M_leaves:           make([]B3Leaf, 0, def.InitialLeafCapacity),
		M_width:            def.Width,
		M_nodeCapacity:     def.InitialNodeCapacity,
		M_refinementBudget: def.RefinementBudget,
		M_log:              def.logger(),
	}

	root := tree.allocateNode(0)
	B3Assert(root == 0)

	return tree, nil
}

/// Like NewB3Tree but panics on an invalid def.
func MustNewB3Tree(def B3TreeDef) *B3Tree {
	tree, err := NewB3Tree(def)
	if err != nil {
		panic(err)
	}
	return tree
}

func (tree *B3Tree) GetWidth() int {
	return tree.M_width
}

func (tree *B3Tree) GetLeafCount() int {
	return len(tree.M_leaves)
}

/// Depth of the deepest level, 0 when only the root exists.
func (tree *B3Tree) GetMaximumDepth() int {
	return len(tree.M_levels) - 1
}

func (tree *B3Tree) GetNodeCount() int {
	count := 0
	for i := range tree.M_levels {
		count += len(tree.M_levels[i].Nodes)
	}
	return count
}

func (tree *B3Tree) GetLeaf(leafIndex int) (B3Leaf, error) {
	if err := tree.checkLeafIndex(leafIndex); err != nil {
		return B3Leaf{}, err
	}
	return tree.M_leaves[leafIndex], nil
}

/// The bounds the tree holds for a leaf.
func (tree *B3Tree) GetLeafBounds(leafIndex int) (B3BoundingBox, error) {
	if err := tree.checkLeafIndex(leafIndex); err != nil {
		return MakeB3EmptyBoundingBox(), err
	}
	leaf := tree.M_leaves[leafIndex]
	return tree.M_levels[leaf.Level].Nodes[leaf.Node].Bounds[leaf.Child], nil
}

/// Overwrite the cached bounds of a leaf. Ancestors are stale until the
/// next Refit.
func (tree *B3Tree) SetLeafBounds(leafIndex int, bounds B3BoundingBox) error {
	if err := tree.checkLeafIndex(leafIndex); err != nil {
		return err
	}
	leaf := tree.M_leaves[leafIndex]
	tree.M_levels[leaf.Level].Nodes[leaf.Node].Bounds[leaf.Child] = bounds
	return nil
}

func (tree *B3Tree) checkLeafIndex(leafIndex int) error {
	if leafIndex < 0 || leafIndex >= len(tree.M_leaves) {
		return fmt.Errorf("%w: %d (leaf count %d)", ErrLeafIndexOutOfRange, leafIndex, len(tree.M_leaves))
	}
	return nil
}

// Allocate a node at the given level, adding the level if it is one past
// the deepest.
func (tree *B3Tree) allocateNode(level int) int {
	if level == len(tree.M_levels) {
		tree.M_levels = append(tree.M_levels, B3TreeLevel{
			Nodes: make([]B3TreeNode, 0, tree.M_nodeCapacity),
		})
		if level > 0 {
			tree.M_log.WithField("depth", level).Debug("tree level added")
		}
	}
	B3Assert(level < len(tree.M_levels))

	if nodes := tree.M_levels[level].Nodes; len(nodes) == cap(nodes) && len(nodes) > 0 {
		tree.M_log.WithFields(logrus.Fields{
			"depth":    level,
			"capacity": 2 * cap(nodes),
		}).Debug("tree level grown")
	}

	tree.M_levels[level].Nodes = append(tree.M_levels[level].Nodes, MakeB3TreeNode())
	return len(tree.M_levels[level].Nodes) - 1
}

// Return a node to the pool. The last node of the level takes its place and
// every reference to the moved node is patched. Dropping the last node of a
// level removes the level, which must be the deepest one.
func (tree *B3Tree) removeNode(level int, index int) {
	B3Assert(level > 0)
	nodes := tree.M_levels[level].Nodes
	last := len(nodes) - 1
	B3Assert(0 <= index && index <= last)

	if index != last {
		nodes[index] = nodes[last]
		moved := &nodes[index]
		tree.M_levels[level-1].Nodes[moved.Parent].Children[moved.IndexInParent] = MakeB3InternalRef(index)
		for i := 0; i < moved.ChildCount; i++ {
			tree.updateBackReference(level, index, i)
		}
	}

	nodes[last] = MakeB3TreeNode()
	tree.M_levels[level].Nodes = nodes[:last]

	if last == 0 {
		B3Assertf(level == len(tree.M_levels)-1,
			"box3d: level %d emptied but the tree has %d levels", level, len(tree.M_levels))
		tree.M_levels = tree.M_levels[:level]
		tree.M_log.WithField("depth", level-1).Debug("tree level removed")
	}
}

// Make whatever sits in the slot point back at it.
func (tree *B3Tree) updateBackReference(level int, index int, slot int) {
	child := tree.M_levels[level].Nodes[index].Children[slot]
	switch child.Kind {
	case B3ChildKind_Leaf:
		tree.M_leaves[child.Index] = B3Leaf{Level: level, Node: index, Child: slot}
	case B3ChildKind_Internal:
		childNode := &tree.M_levels[level+1].Nodes[child.Index]
		childNode.Parent = index
		childNode.IndexInParent = slot
	default:
		B3Assertf(false, "box3d: empty child in occupied slot %d of node %d at level %d", slot, index, level)
	}
}
