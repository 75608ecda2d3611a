package box3d

import "fmt"

type B3ChildKind uint8

const (
	B3ChildKind_Empty B3ChildKind = iota
	B3ChildKind_Internal
	B3ChildKind_Leaf
)

/// What a node's child slot points at: nothing, another node of the same
/// tree, or a leaf. Index is a node index for internal children and a leaf
/// index for leaves.
type B3ChildRef struct {
	Kind  B3ChildKind
	Index int
}

var B3EmptyRef = B3ChildRef{Kind: B3ChildKind_Empty, Index: B3_nullNode}

func MakeB3InternalRef(nodeIndex int) B3ChildRef {
	return B3ChildRef{Kind: B3ChildKind_Internal, Index: nodeIndex}
}

func MakeB3LeafRef(leafIndex int) B3ChildRef {
	return B3ChildRef{Kind: B3ChildKind_Leaf, Index: leafIndex}
}

func (ref B3ChildRef) IsEmpty() bool {
	return ref.Kind == B3ChildKind_Empty
}

func (ref B3ChildRef) IsInternal() bool {
	return ref.Kind == B3ChildKind_Internal
}

func (ref B3ChildRef) IsLeaf() bool {
	return ref.Kind == B3ChildKind_Leaf
}

func (ref B3ChildRef) String() string {
	switch ref.Kind {
	case B3ChildKind_Internal:
		return fmt.Sprintf("node %d", ref.Index)
	case B3ChildKind_Leaf:
		return fmt.Sprintf("leaf %d", ref.Index)
	}
	return "empty"
}
