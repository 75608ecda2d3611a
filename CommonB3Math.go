package box3d

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

///////////////////////////////////////////////////////////////////////////////
/// A 3D column vector.
///////////////////////////////////////////////////////////////////////////////
type B3Vec3 = mgl64.Vec3

/// This function is used to ensure that a floating point number is not a NaN or infinity.
func B3IsValid(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func MakeB3Vec3(x, y, z float64) B3Vec3 {
	return B3Vec3{x, y, z}
}

/// Vector filled with the same value.
func MakeB3Vec3Splat(v float64) B3Vec3 {
	return B3Vec3{v, v, v}
}

/// Does this vector contain finite coordinates?
func B3Vec3IsValid(v B3Vec3) bool {
	return B3IsValid(v[0]) && B3IsValid(v[1]) && B3IsValid(v[2])
}

func B3Vec3String(v B3Vec3) string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}

func B3Vec3Min(a, b B3Vec3) B3Vec3 {
	return B3Vec3{
		math.Min(a[0], b[0]),
		math.Min(a[1], b[1]),
		math.Min(a[2], b[2]),
	}
}

func B3Vec3Max(a, b B3Vec3) B3Vec3 {
	return B3Vec3{
		math.Max(a[0], b[0]),
		math.Max(a[1], b[1]),
		math.Max(a[2], b[2]),
	}
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
