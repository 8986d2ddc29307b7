package food

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

const (
	ReferenceLatitude  = 25.6027981
	ReferenceLongitude = 85.1584541

	markerSpread = 0.01
)

// MarkerPosition places a listing near the reference point. The offset is
// derived from the id so a listing lands on the same spot on every render and
// listings sharing an address do not stack.
func MarkerPosition(id string) (lat, lng float64) {
	h := xxhash.Sum64String(id)
	return ReferenceLatitude + spread(uint32(h)), ReferenceLongitude + spread(uint32(h>>32))
}

// spread maps v onto [-markerSpread, markerSpread].
func spread(v uint32) float64 {
	return (float64(v)/math.MaxUint32*2 - 1) * markerSpread
}
