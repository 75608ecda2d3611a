package box3d_test

import (
	"testing"

	"github.com/ByteArena/box3d"
	"github.com/stretchr/testify/assert"
)

func TestBoundingBoxOverlap(t *testing.T) {
	a := makeBox(0, 0, 0, 1, 1, 1)

	assert.True(t, a.Intersects(makeBox(0.5, 0.5, 0.5, 1.5, 1.5, 1.5)))
	assert.True(t, a.Intersects(makeBox(1, 0, 0, 2, 1, 1)), "touching faces overlap")
	assert.True(t, a.Intersects(makeBox(1, 1, 1, 2, 2, 2)), "touching corners overlap")
	assert.False(t, a.Intersects(makeBox(1.01, 0, 0, 2, 1, 1)))
	assert.False(t, a.Intersects(makeBox(0, 0, 2, 1, 1, 3)))

	empty := box3d.MakeB3EmptyBoundingBox()
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.Intersects(a))
	assert.False(t, a.Intersects(empty))
	assert.False(t, empty.Intersects(empty))
}

func TestBoundingBoxMeasures(t *testing.T) {
	unit := makeBox(0, 0, 0, 1, 1, 1)
	assert.Equal(t, 6.0, unit.SurfaceArea())
	assert.Equal(t, 1.0, unit.Volume())
	assert.Equal(t, box3d.MakeB3Vec3(0.5, 0.5, 0.5), unit.GetCenter())
	assert.Equal(t, box3d.MakeB3Vec3(0.5, 0.5, 0.5), unit.GetExtents())

	flat := makeBox(0, 0, 0, 2, 3, 0)
	assert.Equal(t, 12.0, flat.SurfaceArea())

	assert.Equal(t, 0.0, box3d.MakeB3EmptyBoundingBox().SurfaceArea())
}

func TestBoundingBoxUnionAndContains(t *testing.T) {
	a := makeBox(0, 0, 0, 1, 1, 1)
	b := makeBox(2, -1, 0.5, 3, 0, 4)

	union := a.Union(b)
	assert.Equal(t, makeBox(0, -1, 0, 3, 1, 4), union)
	assert.True(t, union.Contains(a))
	assert.True(t, union.Contains(b))
	assert.False(t, a.Contains(union))

	assert.Equal(t, union, box3d.B3BoundingBoxUnion(a, b))
	assert.Equal(t, a, a.Union(box3d.MakeB3EmptyBoundingBox()))
	assert.True(t, box3d.B3BoundingBoxUnion().IsEmpty())

	c := a
	c.CombineInPlace(b)
	assert.Equal(t, union, c)

	assert.Equal(t, makeBox(-0.5, -0.5, -0.5, 1.5, 1.5, 1.5), a.Expand(0.5))
	assert.True(t, a.IsValid())
	assert.False(t, makeBox(1, 0, 0, 0, 1, 1).IsValid())
}
