package box3d

import (
	"math"
)

func B3Assert(a bool) {
	if !a {
		panic("B3Assert")
	}
}

/// Same as B3Assert but reports what went wrong through the package logger
/// before panicking. Only used on validation paths, the arguments are always
/// evaluated.
func B3Assertf(a bool, format string, args ...interface{}) {
	if !a {
		b3Log.Panicf(format, args...)
	}
}

const B3_maxFloat = math.MaxFloat64

/// @file
/// Global tuning constants based on meters-kilograms-seconds (MKS) units.
///

// Tree

/// The maximum number of children of a node in the scalar tree. The actual
/// width is chosen per tree, see B3TreeDef.
const B3_maxChildren = 8

/// The default width of the scalar tree.
const B3_defaultWidth = 4

/// This is used to fatten AABBs in the broad phase. This allows proxies
/// to move by a small amount without triggering a tree update.
/// This is in meters.
const B3_aabbExtension = 0.1

/// This is used to fatten AABBs in the broad phase. This is used to predict
/// the future position based on the current displacement.
/// This is a dimensionless multiplier.
const B3_aabbMultiplier = 2.0

/// Number of nodes visited by one RefitAndRefine call.
const B3_defaultRefinementBudget = 64

/// When a streaming target holds this many lane groups or fewer, batching
/// costs more than it saves and the remaining leaves are traversed one by one.
const B3_streamingFallbackGroups = 2

const B3_defaultLeafCapacity = 16
const B3_defaultNodeCapacity = 16
