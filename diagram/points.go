package diagram

import (
	"math"

	"oss.terrastruct.com/blockdiag/lib/geo"
)

// ConnectionPoint is a boundary position on a shape paired with an outward
// unit normal, usable as a connector endpoint.
type ConnectionPoint struct {
	Pos    *geo.Point
	Normal geo.Vector
}

// ClosestPair exhaustively searches every candidate combination and returns
// the pair with minimal straight-line distance. The candidate sets are small
// and fixed (4 for rectangular shapes), so O(n*m) is fine. Ties keep the
// first pair in enumeration order, which makes the choice deterministic.
func ClosestPair(src, dst []ConnectionPoint) (s, d ConnectionPoint, ok bool) {
	best := math.Inf(1)
	for _, sp := range src {
		for _, dp := range dst {
			dist := sp.Pos.DistanceTo(dp.Pos)
			if dist < best {
				best = dist
				s, d, ok = sp, dp, true
			}
		}
	}
	return s, d, ok
}
