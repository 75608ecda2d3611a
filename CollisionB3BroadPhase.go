package box3d

import (
	"fmt"

	"golang.org/x/exp/slices"
)

type B3BroadPhaseAddPairCallback func(userDataA interface{}, userDataB interface{})

type B3BroadPhaseQueryCallback func(proxyId int) bool

/// A pair of overlapping proxies, ProxyIdA < ProxyIdB.
type B3ProxyPair struct {
	ProxyIdA int
	ProxyIdB int
}

/// This is used to sort pairs.
func B3ProxyPairCompare(pair1 B3ProxyPair, pair2 B3ProxyPair) int {
	return B3PairCompare(B3Pair{LeafA: pair1.ProxyIdA, LeafB: pair1.ProxyIdB}, B3Pair{LeafA: pair2.ProxyIdA, LeafB: pair2.ProxyIdB})
}

const E_nullProxy = -1

type b3Proxy struct {
	Leaf     int
	UserData interface{}
	Next     int
}

/// The broad-phase is used for computing pairs and performing volume
/// queries. Proxy ids are stable for the life of the proxy even though the
/// index moves leaves around on removal.
type B3BroadPhase struct {
	M_index B3SpatialIndex

	M_proxies    []b3Proxy
	M_freeList   int
	M_proxyCount int

	/// Proxy owning each leaf of the index.
	M_leafToProxy []int

	M_needsRefit bool
	M_frameIndex int

	M_leafPairs  []B3Pair
	M_pairBuffer []B3ProxyPair
}

func NewB3BroadPhase(index B3SpatialIndex) *B3BroadPhase {
	return &B3BroadPhase{
		M_index:    index,
		M_freeList: E_nullProxy,
	}
}

func (bp *B3BroadPhase) GetProxyCount() int {
	return bp.M_proxyCount
}

func (bp *B3BroadPhase) GetTreeHeight() int {
	return bp.M_index.GetMaximumDepth()
}

/// Create a proxy for aabb, fattened by B3_aabbExtension on every side.
func (bp *B3BroadPhase) CreateProxy(aabb B3BoundingBox, userData interface{}) int {
	proxyId := bp.allocateProxy()

	leaf := bp.M_index.Add(aabb.Expand(B3_aabbExtension))
	B3Assert(leaf == len(bp.M_leafToProxy))
	bp.M_leafToProxy = append(bp.M_leafToProxy, proxyId)

	bp.M_proxies[proxyId] = b3Proxy{Leaf: leaf, UserData: userData, Next: E_nullProxy}
	bp.M_proxyCount++
	return proxyId
}

func (bp *B3BroadPhase) DestroyProxy(proxyId int) error {
	proxy, err := bp.getProxy(proxyId)
	if err != nil {
		return err
	}

	move, err := bp.M_index.RemoveAt(proxy.Leaf)
	if err != nil {
		return err
	}
	if move.Moved() {
		movedProxy := bp.M_leafToProxy[move.OriginalIndex]
		bp.M_leafToProxy[move.NewIndex] = movedProxy
		bp.M_proxies[movedProxy].Leaf = move.NewIndex
	}
	bp.M_leafToProxy = bp.M_leafToProxy[:move.OriginalIndex]

	bp.freeProxy(proxyId)
	bp.M_proxyCount--
	return nil
}

/// Move a proxy. Nothing happens while the fat box still contains aabb and
/// false is returned. Otherwise the fat box is rebuilt around aabb and
/// extended along the predicted displacement.
func (bp *B3BroadPhase) MoveProxy(proxyId int, aabb B3BoundingBox, displacement B3Vec3) (bool, error) {
	proxy, err := bp.getProxy(proxyId)
	if err != nil {
		return false, err
	}

	fatAABB, err := bp.M_index.GetLeafBounds(proxy.Leaf)
	if err != nil {
		return false, err
	}
	if fatAABB.Contains(aabb) {
		return false, nil
	}

	b := aabb.Expand(B3_aabbExtension)

	// Predict AABB displacement.
	d := displacement.Mul(B3_aabbMultiplier)
	for axis := 0; axis < 3; axis++ {
		if d[axis] < 0.0 {
			b.Min[axis] += d[axis]
		} else {
			b.Max[axis] += d[axis]
		}
	}

	if err := bp.M_index.SetLeafBounds(proxy.Leaf, b); err != nil {
		return false, err
	}
	bp.M_needsRefit = true
	return true, nil
}

func (bp *B3BroadPhase) GetFatAABB(proxyId int) (B3BoundingBox, error) {
	proxy, err := bp.getProxy(proxyId)
	if err != nil {
		return MakeB3EmptyBoundingBox(), err
	}
	return bp.M_index.GetLeafBounds(proxy.Leaf)
}

/// User data of a live proxy, nil otherwise.
func (bp *B3BroadPhase) GetUserData(proxyId int) interface{} {
	proxy, err := bp.getProxy(proxyId)
	if err != nil {
		return nil
	}
	return proxy.UserData
}

func (bp *B3BroadPhase) TestOverlap(proxyIdA int, proxyIdB int) bool {
	a, errA := bp.GetFatAABB(proxyIdA)
	b, errB := bp.GetFatAABB(proxyIdB)
	if errA != nil || errB != nil {
		return false
	}
	return B3TestOverlapBoundingBoxes(a, b)
}

/// Report every proxy whose fat box intersects aabb.
func (bp *B3BroadPhase) Query(callback B3BroadPhaseQueryCallback, aabb B3BoundingBox) {
	bp.refitIfNeeded()
	bp.M_index.Query(aabb, func(leafIndex int) bool {
		return callback(bp.M_leafToProxy[leafIndex])
	})
}

/// Refine the index a little, refit it, and report every pair of
/// proxies with overlapping fat boxes, sorted by proxy id.
func (bp *B3BroadPhase) UpdatePairs(addPairCallback B3BroadPhaseAddPairCallback) {
	bp.M_index.RefitAndRefine(bp.M_frameIndex)
	bp.M_frameIndex++
	bp.M_needsRefit = false

	bp.M_leafPairs = bp.M_index.GetSelfOverlaps(bp.M_leafPairs[:0])

	bp.M_pairBuffer = bp.M_pairBuffer[:0]
	for _, pair := range bp.M_leafPairs {
		proxyA := bp.M_leafToProxy[pair.LeafA]
		proxyB := bp.M_leafToProxy[pair.LeafB]
		bp.M_pairBuffer = append(bp.M_pairBuffer, B3ProxyPair{
			ProxyIdA: MinInt(proxyA, proxyB),
			ProxyIdB: MaxInt(proxyA, proxyB),
		})
	}

	slices.SortFunc(bp.M_pairBuffer, B3ProxyPairCompare)

	for _, pair := range bp.M_pairBuffer {
		addPairCallback(bp.M_proxies[pair.ProxyIdA].UserData, bp.M_proxies[pair.ProxyIdB].UserData)
	}
}

/// Proxy pairs found by the last UpdatePairs, valid until the next call.
func (bp *B3BroadPhase) GetPairs() []B3ProxyPair {
	return bp.M_pairBuffer
}

func (bp *B3BroadPhase) refitIfNeeded() {
	if bp.M_needsRefit {
		bp.M_index.Refit()
		bp.M_needsRefit = false
	}
}

func (bp *B3BroadPhase) getProxy(proxyId int) (*b3Proxy, error) {
	if proxyId < 0 || proxyId >= len(bp.M_proxies) || bp.M_proxies[proxyId].Leaf == E_nullProxy {
		return nil, fmt.Errorf("%w: %d", ErrProxyNotFound, proxyId)
	}
	return &bp.M_proxies[proxyId], nil
}

// Take a proxy id from the free list, growing the table if it is empty.
func (bp *B3BroadPhase) allocateProxy() int {
	if bp.M_freeList == E_nullProxy {
		bp.M_proxies = append(bp.M_proxies, b3Proxy{Leaf: E_nullProxy, Next: E_nullProxy})
		return len(bp.M_proxies) - 1
	}
	proxyId := bp.M_freeList
	bp.M_freeList = bp.M_proxies[proxyId].Next
	return proxyId
}

func (bp *B3BroadPhase) freeProxy(proxyId int) {
	bp.M_proxies[proxyId] = b3Proxy{Leaf: E_nullProxy, Next: bp.M_freeList}
	bp.M_freeList = proxyId
}
