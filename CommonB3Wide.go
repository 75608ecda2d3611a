package box3d

import (
	"math"
	"math/bits"
)

///////////////////////////////////////////////////////////////////////////////
/// Portable wide vectors. One B3Wide holds B3_laneCount values processed
/// together; loops over the fixed-size array are what the compiler sees in
/// place of platform intrinsics.
///////////////////////////////////////////////////////////////////////////////

const B3_laneCount = 4

/// Every lane set.
const B3_allLanes B3LaneMask = 1<<B3_laneCount - 1

type B3Wide [B3_laneCount]float64

/// One bit per lane, bit i for lane i.
type B3LaneMask uint32

func B3WideBroadcast(v float64) B3Wide {
	var res B3Wide
	for i := range res {
		res[i] = v
	}
	return res
}

func B3WideAdd(a, b B3Wide) B3Wide {
	var res B3Wide
	for i := range res {
		res[i] = a[i] + b[i]
	}
	return res
}

func B3WideSub(a, b B3Wide) B3Wide {
	var res B3Wide
	for i := range res {
		res[i] = a[i] - b[i]
	}
	return res
}

func B3WideMul(a, b B3Wide) B3Wide {
	var res B3Wide
	for i := range res {
		res[i] = a[i] * b[i]
	}
	return res
}

func B3WideMin(a, b B3Wide) B3Wide {
	var res B3Wide
	for i := range res {
		res[i] = math.Min(a[i], b[i])
	}
	return res
}

func B3WideMax(a, b B3Wide) B3Wide {
	var res B3Wide
	for i := range res {
		res[i] = math.Max(a[i], b[i])
	}
	return res
}

func B3WideLessOrEqual(a, b B3Wide) B3LaneMask {
	var mask B3LaneMask
	for i := range a {
		if a[i] <= b[i] {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

/// Conditional select: lanes set in mask come from a, the others from b.
func B3WideSelect(mask B3LaneMask, a, b B3Wide) B3Wide {
	var res B3Wide
	for i := range res {
		if mask&(1<<uint(i)) != 0 {
			res[i] = a[i]
		} else {
			res[i] = b[i]
		}
	}
	return res
}

/// Mask of the first count lanes.
func B3LaneMaskFirst(count int) B3LaneMask {
	return B3LaneMask(1)<<uint(count) - 1
}

func B3LaneMaskCount(mask B3LaneMask) int {
	return bits.OnesCount32(uint32(mask))
}

/// Index of the lowest set lane. The mask must not be zero.
func B3LaneMaskFirstLane(mask B3LaneMask) int {
	return bits.TrailingZeros32(uint32(mask))
}

///////////////////////////////////////////////////////////////////////////////
/// B3_laneCount boxes stored as struct-of-arrays lanes.
///////////////////////////////////////////////////////////////////////////////
type B3BoundingBoxWide struct {
	MinX, MinY, MinZ B3Wide
	MaxX, MaxY, MaxZ B3Wide
}

/// All lanes empty.
func MakeB3BoundingBoxWide() B3BoundingBoxWide {
	inf := B3WideBroadcast(math.Inf(1))
	negInf := B3WideBroadcast(math.Inf(-1))
	return B3BoundingBoxWide{
		MinX: inf, MinY: inf, MinZ: inf,
		MaxX: negInf, MaxY: negInf, MaxZ: negInf,
	}
}

/// Every lane holds box.
func B3BoundingBoxWideBroadcast(box B3BoundingBox) B3BoundingBoxWide {
	return B3BoundingBoxWide{
		MinX: B3WideBroadcast(box.Min[0]),
		MinY: B3WideBroadcast(box.Min[1]),
		MinZ: B3WideBroadcast(box.Min[2]),
		MaxX: B3WideBroadcast(box.Max[0]),
		MaxY: B3WideBroadcast(box.Max[1]),
		MaxZ: B3WideBroadcast(box.Max[2]),
	}
}

func (w B3BoundingBoxWide) GetLane(lane int) B3BoundingBox {
	return B3BoundingBox{
		Min: B3Vec3{w.MinX[lane], w.MinY[lane], w.MinZ[lane]},
		Max: B3Vec3{w.MaxX[lane], w.MaxY[lane], w.MaxZ[lane]},
	}
}

func (w *B3BoundingBoxWide) SetLane(lane int, box B3BoundingBox) {
	w.MinX[lane] = box.Min[0]
	w.MinY[lane] = box.Min[1]
	w.MinZ[lane] = box.Min[2]
	w.MaxX[lane] = box.Max[0]
	w.MaxY[lane] = box.Max[1]
	w.MaxZ[lane] = box.Max[2]
}

func (w *B3BoundingBoxWide) ClearLane(lane int) {
	w.SetLane(lane, MakeB3EmptyBoundingBox())
}

/// Copy lane src of other into lane dst.
func (w *B3BoundingBoxWide) CopyLane(dst int, other *B3BoundingBoxWide, src int) {
	w.MinX[dst] = other.MinX[src]
	w.MinY[dst] = other.MinY[src]
	w.MinZ[dst] = other.MinZ[src]
	w.MaxX[dst] = other.MaxX[src]
	w.MaxY[dst] = other.MaxY[src]
	w.MaxZ[dst] = other.MaxZ[src]
}

/// Per-lane intersection of two wide boxes. Empty lanes never intersect.
func (w B3BoundingBoxWide) Intersects(other B3BoundingBoxWide) B3LaneMask {
	return B3WideLessOrEqual(w.MinX, other.MaxX) &
		B3WideLessOrEqual(other.MinX, w.MaxX) &
		B3WideLessOrEqual(w.MinY, other.MaxY) &
		B3WideLessOrEqual(other.MinY, w.MaxY) &
		B3WideLessOrEqual(w.MinZ, other.MaxZ) &
		B3WideLessOrEqual(other.MinZ, w.MaxZ)
}

/// Intersection of one box against every lane.
func (w B3BoundingBoxWide) IntersectsBox(box B3BoundingBox) B3LaneMask {
	return w.Intersects(B3BoundingBoxWideBroadcast(box))
}

/// Per-lane union.
func (w B3BoundingBoxWide) Union(other B3BoundingBoxWide) B3BoundingBoxWide {
	return B3BoundingBoxWide{
		MinX: B3WideMin(w.MinX, other.MinX),
		MinY: B3WideMin(w.MinY, other.MinY),
		MinZ: B3WideMin(w.MinZ, other.MinZ),
		MaxX: B3WideMax(w.MaxX, other.MaxX),
		MaxY: B3WideMax(w.MaxY, other.MaxY),
		MaxZ: B3WideMax(w.MaxZ, other.MaxZ),
	}
}

/// Lanes holding a non-empty box.
func (w B3BoundingBoxWide) NonEmpty() B3LaneMask {
	return B3WideLessOrEqual(w.MinX, w.MaxX) &
		B3WideLessOrEqual(w.MinY, w.MaxY) &
		B3WideLessOrEqual(w.MinZ, w.MaxZ)
}

/// Per-lane surface area, zero in empty lanes.
func (w B3BoundingBoxWide) SurfaceArea() B3Wide {
	dx := B3WideSub(w.MaxX, w.MinX)
	dy := B3WideSub(w.MaxY, w.MinY)
	dz := B3WideSub(w.MaxZ, w.MinZ)
	sum := B3WideAdd(B3WideAdd(B3WideMul(dx, dy), B3WideMul(dx, dz)), B3WideMul(dy, dz))
	return B3WideSelect(w.NonEmpty(), B3WideAdd(sum, sum), B3Wide{})
}

/// Lanes set in mask come from a, the others from b.
func B3BoundingBoxWideSelect(mask B3LaneMask, a, b B3BoundingBoxWide) B3BoundingBoxWide {
	return B3BoundingBoxWide{
		MinX: B3WideSelect(mask, a.MinX, b.MinX),
		MinY: B3WideSelect(mask, a.MinY, b.MinY),
		MinZ: B3WideSelect(mask, a.MinZ, b.MinZ),
		MaxX: B3WideSelect(mask, a.MaxX, b.MaxX),
		MaxY: B3WideSelect(mask, a.MaxY, b.MaxY),
		MaxZ: B3WideSelect(mask, a.MaxZ, b.MaxZ),
	}
}

/// Union of the lanes selected by mask.
func (w B3BoundingBoxWide) Reduce(mask B3LaneMask) B3BoundingBox {
	res := MakeB3EmptyBoundingBox()
	for m := mask; m != 0; m &= m - 1 {
		res.CombineInPlace(w.GetLane(B3LaneMaskFirstLane(m)))
	}
	return res
}
