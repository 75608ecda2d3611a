package box3d

import "fmt"

/// Up to B3_laneCount leaves travelling down the tree together. Lanes not
/// in Mask hold the empty box.
type B3LeafGroup struct {
	Bounds B3BoundingBoxWide
	Leaves [B3_laneCount]int
	Mask   B3LaneMask
}

func MakeB3LeafGroup() B3LeafGroup {
	return B3LeafGroup{
		Bounds: MakeB3BoundingBoxWide(),
	}
}

func (group *B3LeafGroup) push(leafIndex int, bounds *B3BoundingBoxWide, lane int) {
	slot := B3LaneMaskCount(group.Mask)
	group.Bounds.CopyLane(slot, bounds, lane)
	group.Leaves[slot] = leafIndex
	group.Mask |= 1 << uint(slot)
}

// Groups [GroupStart, GroupEnd) of the scratch arena still to be tested
// against the subtree at Node.
type b3StreamingTarget struct {
	Node       int
	GroupStart int
	GroupEnd   int
}

type b3StreamingScratch struct {
	groups  []B3LeafGroup
	targets *B3GrowableStack[b3StreamingTarget]
}

func newB3StreamingScratch() *b3StreamingScratch {
	return &b3StreamingScratch{
		groups:  make([]B3LeafGroup, 0, 64),
		targets: NewB3GrowableStack[b3StreamingTarget](32),
	}
}

func (scratch *b3StreamingScratch) reset() {
	scratch.groups = scratch.groups[:0]
	scratch.targets.Reset()
}

/// Append every pair of intersecting leaves, each once with LeafA < LeafB.
/// All leaves start out packed into groups at the root. At each node a
/// group is tested against a child with one wide test; a leaf child pairs
/// with the hit leaves of lower index, an internal child receives the hit
/// lanes repacked into new groups. Targets that carry few groups finish
/// with one query per leaf.
func (tree *B3BundleTree) GetSelfOverlapsStreaming(results []B3Pair) []B3Pair {
	if len(tree.M_leaves) < 2 {
		return results
	}

	scratch := acquireB3StreamingScratch()
	defer releaseB3StreamingScratch(scratch)

	scratch.groups = tree.packLeafGroups(0, len(tree.M_leaves), scratch.groups)
	return tree.stream(scratch, results)
}

/// Streaming self-overlap with the root groups split across workers. Each
/// worker streams its own groups against the whole tree into a private
/// buffer; buffers are concatenated in worker order.
func (tree *B3BundleTree) GetSelfOverlapsStreamingParallel(workers int, results []B3Pair) ([]B3Pair, error) {
	if workers <= 0 {
		return results, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	if len(tree.M_leaves) < 2 {
		return results, nil
	}

	groupCount := (len(tree.M_leaves) + B3_laneCount - 1) / B3_laneCount
	buffers := make([][]B3Pair, workers)
	err := B3Task(workers, groupCount, func(worker, start, end int) error {
		scratch := acquireB3StreamingScratch()
		defer releaseB3StreamingScratch(scratch)

		first := start * B3_laneCount
		last := MinInt(end*B3_laneCount, len(tree.M_leaves))
		scratch.groups = tree.packLeafGroups(first, last, scratch.groups)
		buffers[worker] = tree.stream(scratch, nil)
		return nil
	})
	if err != nil {
		return results, err
	}
	for _, buffer := range buffers {
		results = append(results, buffer...)
	}
	return results, nil
}

// Pack leaves [start, end) densely, B3_laneCount per group.
func (tree *B3BundleTree) packLeafGroups(start int, end int, groups []B3LeafGroup) []B3LeafGroup {
	for first := start; first < end; first += B3_laneCount {
		group := MakeB3LeafGroup()
		for lane, leafIndex := 0, first; lane < B3_laneCount && leafIndex < end; lane, leafIndex = lane+1, leafIndex+1 {
			group.Bounds.SetLane(lane, tree.leafBounds(leafIndex))
			group.Leaves[lane] = leafIndex
			group.Mask |= 1 << uint(lane)
		}
		groups = append(groups, group)
	}
	return groups
}

// Stream the groups already in the arena from the root.
func (tree *B3BundleTree) stream(scratch *b3StreamingScratch, results []B3Pair) []B3Pair {
	targets := scratch.targets
	targets.Push(b3StreamingTarget{Node: 0, GroupStart: 0, GroupEnd: len(scratch.groups)})

	for targets.GetCount() > 0 {
		target := targets.Pop()
		// Everything past this target belongs to targets already finished.
		scratch.groups = scratch.groups[:target.GroupEnd]

		if target.GroupEnd-target.GroupStart <= tree.M_fallbackGroups {
			results = tree.streamFallback(scratch.groups[target.GroupStart:target.GroupEnd], target.Node, results)
			continue
		}

		node := &tree.M_nodes[target.Node]
		for i := 0; i < node.ChildCount; i++ {
			child := node.Children[i]
			childBounds := node.Bounds.GetLane(i)

			if child.IsLeaf() {
				for g := target.GroupStart; g < target.GroupEnd; g++ {
					group := &scratch.groups[g]
					for hits := group.Bounds.IntersectsBox(childBounds) & group.Mask; hits != 0; hits &= hits - 1 {
						if leafIndex := group.Leaves[B3LaneMaskFirstLane(hits)]; leafIndex < child.Index {
							results = append(results, B3Pair{LeafA: leafIndex, LeafB: child.Index})
						}
					}
				}
				continue
			}

			start := len(scratch.groups)
			packing := -1
			for g := target.GroupStart; g < target.GroupEnd; g++ {
				group := scratch.groups[g]
				hits := group.Bounds.IntersectsBox(childBounds) & group.Mask
				if hits == 0 {
					continue
				}

				if B3LaneMaskCount(hits) > B3_laneCount/2 {
					group.Bounds = B3BoundingBoxWideSelect(hits, group.Bounds, MakeB3BoundingBoxWide())
					group.Mask = hits
					scratch.groups = append(scratch.groups, group)
					continue
				}

				for ; hits != 0; hits &= hits - 1 {
					lane := B3LaneMaskFirstLane(hits)
					if packing < 0 || scratch.groups[packing].Mask == B3_allLanes {
						scratch.groups = append(scratch.groups, MakeB3LeafGroup())
						packing = len(scratch.groups) - 1
					}
					scratch.groups[packing].push(group.Leaves[lane], &group.Bounds, lane)
				}
			}

			if len(scratch.groups) > start {
				targets.Push(b3StreamingTarget{Node: child.Index, GroupStart: start, GroupEnd: len(scratch.groups)})
			}
		}
	}

	return results
}

func (tree *B3BundleTree) streamFallback(groups []B3LeafGroup, nodeIndex int, results []B3Pair) []B3Pair {
	for g := range groups {
		group := &groups[g]
		for lanes := group.Mask; lanes != 0; lanes &= lanes - 1 {
			lane := B3LaneMaskFirstLane(lanes)
			leafIndex := group.Leaves[lane]
			tree.queryFrom(nodeIndex, group.Bounds.GetLane(lane), func(other int) bool {
				if other > leafIndex {
					results = append(results, B3Pair{LeafA: leafIndex, LeafB: other})
				}
				return true
			})
		}
	}
	return results
}
