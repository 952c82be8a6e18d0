package geo

import "math"

const earthRadiusKm = 6371.0

// MetersPerDegree is the flat-earth scale used for hot-zone proximity checks.
// Loop closure and anti-cheat use true great-circle distance instead.
const MetersPerDegree = 111320.0

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// HaversineM returns the great-circle distance in meters.
func HaversineM(lat1, lng1, lat2, lng2 float64) float64 {
	return HaversineKm(lat1, lng1, lat2, lng2) * 1000
}

// PlanarDistanceM approximates the distance between two points by treating
// degrees as a flat grid. Only usable over short ranges.
func PlanarDistanceM(lat1, lng1, lat2, lng2 float64) float64 {
	return math.Hypot(lat2-lat1, lng2-lng1) * MetersPerDegree
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
