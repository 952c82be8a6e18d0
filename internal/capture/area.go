package capture

import (
	"math"

	"github.com/shaswat2031/rungo/internal/shared/geo"
	"github.com/shaswat2031/rungo/internal/zone"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// AreaM2 computes the geodesic area of the closed path in square meters.
// The ring is closed explicitly when the endpoints differ. Self-intersecting
// loops are not treated specially.
func AreaM2(path Path) float64 {
	if len(path) < 3 {
		return 0
	}

	ring := make(orb.Ring, 0, len(path)+1)
	for _, p := range path {
		ring = append(ring, orb.Point{p.Longitude, p.Latitude})
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}

	return math.Abs(orbgeo.Area(orb.Polygon{ring}))
}

// ZoneMultiplier returns the multiplier of the hot zone covering the path's
// final vertex, using the flat-earth degree approximation for proximity.
// When several zones cover the vertex, the last one in the slice wins.
func ZoneMultiplier(path Path, zones []zone.HotZone) float64 {
	if len(path) == 0 {
		return 1
	}

	head := path[len(path)-1]
	multiplier := 1.0
	for _, z := range zones {
		dist := geo.PlanarDistanceM(z.Lat, z.Lng, head.Latitude, head.Longitude)
		if dist < z.RadiusM {
			multiplier = z.Multiplier
		}
	}
	return multiplier
}

// FinalAreaM2 applies the hot-zone multiplier to the raw geodesic area.
func FinalAreaM2(path Path, zones []zone.HotZone) float64 {
	return AreaM2(path) * ZoneMultiplier(path, zones)
}
