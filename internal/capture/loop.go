package capture

import "github.com/shaswat2031/rungo/internal/shared/geo"

const (
	minLoopPoints   = 5
	closeThresholdM = 20.0
)

// LoopClosed reports whether the path has returned near its starting point.
// Paths shorter than 5 points never close, regardless of geometry.
func LoopClosed(path Path) bool {
	if len(path) < minLoopPoints {
		return false
	}

	start := path[0]
	end := path[len(path)-1]
	return geo.HaversineM(start.Latitude, start.Longitude, end.Latitude, end.Longitude) < closeThresholdM
}
