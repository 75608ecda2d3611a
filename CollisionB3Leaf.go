package box3d

const B3_nullNode = -1

/// Where a leaf lives: the owning node and the child slot in it. Level is
/// the depth of the owner and only means something in the multi-level tree.
type B3Leaf struct {
	Level int
	Node  int
	Child int
}

/// Reported by RemoveAt. The leaf that used to be OriginalIndex is now
/// NewIndex; callers keeping per-leaf data must move it accordingly.
type B3LeafMove struct {
	OriginalIndex int
	NewIndex      int
}

/// False when the removed leaf was the last one and nothing was relocated.
func (move B3LeafMove) Moved() bool {
	return move.OriginalIndex != move.NewIndex
}

/// An overlapping pair of leaves, LeafA < LeafB.
type B3Pair struct {
	LeafA int
	LeafB int
}

func MakeB3Pair(a, b int) B3Pair {
	if a > b {
		a, b = b, a
	}
	return B3Pair{LeafA: a, LeafB: b}
}

/// This is used to sort pairs.
func B3PairCompare(pair1 B3Pair, pair2 B3Pair) int {
	if pair1.LeafA != pair2.LeafA {
		if pair1.LeafA < pair2.LeafA {
			return -1
		}
		return 1
	}

	if pair1.LeafB < pair2.LeafB {
		return -1
	}
	if pair1.LeafB > pair2.LeafB {
		return 1
	}
	return 0
}

/// Return false to stop the query.
type B3TreeQueryCallback func(leafIndex int) bool
