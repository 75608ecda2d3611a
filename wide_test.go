package box3d_test

import (
	"testing"

	"github.com/ByteArena/box3d"
	"github.com/stretchr/testify/assert"
)

func TestWideLaneMasks(t *testing.T) {
	assert.Equal(t, box3d.B3LaneMask(0), box3d.B3LaneMaskFirst(0))
	assert.Equal(t, box3d.B3LaneMask(0b0111), box3d.B3LaneMaskFirst(3))
	assert.Equal(t, box3d.B3_allLanes, box3d.B3LaneMaskFirst(box3d.B3_laneCount))
	assert.Equal(t, 2, box3d.B3LaneMaskCount(0b1010))
	assert.Equal(t, 1, box3d.B3LaneMaskFirstLane(0b1010))

	a := box3d.B3Wide{1, 5, 3, 0}
	b := box3d.B3Wide{2, 4, 3, -1}
	assert.Equal(t, box3d.B3LaneMask(0b0101), box3d.B3WideLessOrEqual(a, b))
	assert.Equal(t, box3d.B3Wide{1, 4, 3, -1}, box3d.B3WideMin(a, b))
	assert.Equal(t, box3d.B3Wide{2, 5, 3, 0}, box3d.B3WideMax(a, b))
	assert.Equal(t, box3d.B3Wide{1, 4, 3, 0}, box3d.B3WideSelect(0b1001, a, b))
}

func TestWideBoundingBoxLanes(t *testing.T) {
	boxes := []box3d.B3BoundingBox{
		makeBox(0, 0, 0, 1, 1, 1),
		makeBox(5, 5, 5, 6, 6, 6),
		makeBox(0.5, 0, 0, 2, 2, 2),
	}

	wide := box3d.MakeB3BoundingBoxWide()
	assert.Equal(t, box3d.B3LaneMask(0), wide.NonEmpty())
	for i, box := range boxes {
		wide.SetLane(i, box)
	}
	for i, box := range boxes {
		assert.Equal(t, box, wide.GetLane(i))
	}
	assert.True(t, wide.GetLane(3).IsEmpty())
	assert.Equal(t, box3d.B3LaneMask(0b0111), wide.NonEmpty())

	// Lane 3 is empty and never reported.
	assert.Equal(t, box3d.B3LaneMask(0b0101), wide.IntersectsBox(makeBox(0.9, 0.9, 0.9, 1, 1, 1)))
	assert.Equal(t, box3d.B3LaneMask(0), wide.IntersectsBox(makeBox(10, 10, 10, 11, 11, 11)))
	assert.Equal(t, box3d.B3LaneMask(0), wide.IntersectsBox(box3d.MakeB3EmptyBoundingBox()))

	area := wide.SurfaceArea()
	assert.Equal(t, box3d.B3Wide{6, 6, 20, 0}, area)

	assert.Equal(t, box3d.B3BoundingBoxUnion(boxes...), wide.Reduce(box3d.B3_allLanes))
	assert.Equal(t, boxes[1], wide.Reduce(0b0010))
	assert.True(t, wide.Reduce(0).IsEmpty())

	wide.ClearLane(1)
	assert.True(t, wide.GetLane(1).IsEmpty())

	other := box3d.MakeB3BoundingBoxWide()
	other.CopyLane(3, &wide, 0)
	assert.Equal(t, boxes[0], other.GetLane(3))

	selected := box3d.B3BoundingBoxWideSelect(0b0001, wide, box3d.MakeB3BoundingBoxWide())
	assert.Equal(t, boxes[0], selected.GetLane(0))
	assert.True(t, selected.GetLane(2).IsEmpty())
}
