package capture

import (
	"errors"

	"github.com/shaswat2031/rungo/internal/shared/geo"
)

// maxLoopSpeed is the fastest plausible segment speed for a runner, ~28.8 km/h.
const maxLoopSpeed = 8.0 // m/s

var (
	// ErrSpeedTooHigh rejects a candidate loop that implies vehicle movement.
	ErrSpeedTooHigh = errors.New("speed too high")
	// ErrTooFewPoints rejects a path too short to enclose anything.
	ErrTooFewPoints = errors.New("too few points")
	// ErrLoopNotClosed rejects a path whose endpoints do not meet.
	ErrLoopNotClosed = errors.New("loop not closed")
)

// ValidatePath is the anti-cheat pass over a candidate closed path. One
// segment above the speed limit rejects the whole path. Segments with zero or
// negative elapsed time are skipped.
func ValidatePath(path Path) error {
	if len(path) < minLoopPoints {
		return ErrTooFewPoints
	}
	if !LoopClosed(path) {
		return ErrLoopNotClosed
	}
	for i := 1; i < len(path); i++ {
		p1 := path[i-1]
		p2 := path[i]

		distKm := geo.HaversineKm(p1.Latitude, p1.Longitude, p2.Latitude, p2.Longitude)
		elapsedSec := float64(p2.Timestamp-p1.Timestamp) / 1000

		if elapsedSec > 0 && distKm*1000/elapsedSec > maxLoopSpeed {
			return ErrSpeedTooHigh
		}
	}
	return nil
}
