package box3d

import (
	"math"
)

/// An axis aligned bounding box.
type B3BoundingBox struct {
	Min B3Vec3 ///< the lower vertex
	Max B3Vec3 ///< the upper vertex
}

func MakeB3BoundingBox(min, max B3Vec3) B3BoundingBox {
	return B3BoundingBox{
		Min: min,
		Max: max,
	}
}

/// The empty box: min at +inf and max at -inf. Combining it with any box
/// yields that box, and it intersects nothing, itself included.
func MakeB3EmptyBoundingBox() B3BoundingBox {
	return B3BoundingBox{
		Min: MakeB3Vec3Splat(math.Inf(1)),
		Max: MakeB3Vec3Splat(math.Inf(-1)),
	}
}

func NewB3BoundingBox(min, max B3Vec3) *B3BoundingBox {
	res := MakeB3BoundingBox(min, max)
	return &res
}

/// True when the box is inverted on any axis (the empty sentinel is).
func (bb B3BoundingBox) IsEmpty() bool {
	return bb.Min[0] > bb.Max[0] || bb.Min[1] > bb.Max[1] || bb.Min[2] > bb.Max[2]
}

/// Get the center of the box.
func (bb B3BoundingBox) GetCenter() B3Vec3 {
	return bb.Min.Add(bb.Max).Mul(0.5)
}

/// Get the extents of the box (half-widths).
func (bb B3BoundingBox) GetExtents() B3Vec3 {
	return bb.Max.Sub(bb.Min).Mul(0.5)
}

/// Surface area, zero for empty boxes.
func (bb B3BoundingBox) SurfaceArea() float64 {
	if bb.IsEmpty() {
		return 0.0
	}

	d := bb.Max.Sub(bb.Min)
	return 2.0 * (d[0]*d[1] + d[0]*d[2] + d[1]*d[2])
}

func (bb B3BoundingBox) Volume() float64 {
	if bb.IsEmpty() {
		return 0.0
	}

	d := bb.Max.Sub(bb.Min)
	return d[0] * d[1] * d[2]
}

/// Combine a box into this one.
func (bb *B3BoundingBox) CombineInPlace(other B3BoundingBox) {
	bb.Min = B3Vec3Min(bb.Min, other.Min)
	bb.Max = B3Vec3Max(bb.Max, other.Max)
}

/// Combine two boxes into this one.
func (bb *B3BoundingBox) CombineTwoInPlace(a, b B3BoundingBox) {
	bb.Min = B3Vec3Min(a.Min, b.Min)
	bb.Max = B3Vec3Max(a.Max, b.Max)
}

func (bb B3BoundingBox) Union(other B3BoundingBox) B3BoundingBox {
	return B3BoundingBox{
		Min: B3Vec3Min(bb.Min, other.Min),
		Max: B3Vec3Max(bb.Max, other.Max),
	}
}

/// Does this box contain the provided box.
func (bb B3BoundingBox) Contains(other B3BoundingBox) bool {
	return bb.Min[0] <= other.Min[0] &&
		bb.Min[1] <= other.Min[1] &&
		bb.Min[2] <= other.Min[2] &&
		other.Max[0] <= bb.Max[0] &&
		other.Max[1] <= bb.Max[1] &&
		other.Max[2] <= bb.Max[2]
}

/// Touching boxes intersect.
func (bb B3BoundingBox) Intersects(other B3BoundingBox) bool {
	return B3TestOverlapBoundingBoxes(bb, other)
}

/// Grow the box by margin on every side.
func (bb B3BoundingBox) Expand(margin float64) B3BoundingBox {
	r := MakeB3Vec3Splat(margin)
	return B3BoundingBox{
		Min: bb.Min.Sub(r),
		Max: bb.Max.Add(r),
	}
}

func (bb B3BoundingBox) IsValid() bool {
	d := bb.Max.Sub(bb.Min)
	valid := d[0] >= 0.0 && d[1] >= 0.0 && d[2] >= 0.0
	valid = valid && B3Vec3IsValid(bb.Min) && B3Vec3IsValid(bb.Max)
	return valid
}

func B3TestOverlapBoundingBoxes(a, b B3BoundingBox) bool {
	return a.Min[0] <= b.Max[0] && b.Min[0] <= a.Max[0] &&
		a.Min[1] <= b.Max[1] && b.Min[1] <= a.Max[1] &&
		a.Min[2] <= b.Max[2] && b.Min[2] <= a.Max[2]
}

/// Union of a set of boxes, the empty box for an empty set.
func B3BoundingBoxUnion(boxes ...B3BoundingBox) B3BoundingBox {
	res := MakeB3EmptyBoundingBox()
	for i := range boxes {
		res.CombineInPlace(boxes[i])
	}

	return res
}
