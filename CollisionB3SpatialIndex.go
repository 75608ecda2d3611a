package box3d

/// What the broad phase needs from a tree. Both B3Tree and B3BundleTree
/// implement it.
type B3SpatialIndex interface {
	Add(bounds B3BoundingBox) int
	RemoveAt(leafIndex int) (B3LeafMove, error)
	GetLeafBounds(leafIndex int) (B3BoundingBox, error)
	SetLeafBounds(leafIndex int, bounds B3BoundingBox) error
	Refit()
	RefitAndRefine(frameIndex int)
	Query(box B3BoundingBox, callback B3TreeQueryCallback)
	GetSelfOverlaps(results []B3Pair) []B3Pair
	GetLeafCount() int
	GetMaximumDepth() int
	Validate()
}

var (
	_ B3SpatialIndex = (*B3Tree)(nil)
	_ B3SpatialIndex = (*B3BundleTree)(nil)
)
