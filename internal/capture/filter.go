package capture

import "github.com/shaswat2031/rungo/internal/shared/geo"

const (
	maxAccuracyM = 35.0
	maxFixSpeed  = 12.0 // m/s, anything faster is vehicle movement
	minStepM     = 1.0
	maxStepM     = 100.0
)

// Filter screens raw GPS fixes before they enter a capture path and keeps the
// running distance covered during the session. Fixes with poor reported
// accuracy or vehicle-level reported speed are dropped entirely. Accepted
// fixes whose displacement from the previous fix falls outside (1, 100)
// meters still become the current position but do not count toward distance:
// below the window is jitter, above it is a GPS glitch.
type Filter struct {
	last      *Position
	distanceM float64
}

func NewFilter() *Filter {
	return &Filter{}
}

// Accept reports whether the fix passes noise filtering. Accepted fixes
// update the current position and, when inside the step window, the session
// distance.
func (f *Filter) Accept(p Position) bool {
	if p.Accuracy > maxAccuracyM {
		return false
	}
	if p.Speed > maxFixSpeed {
		return false
	}

	if f.last != nil {
		d := geo.HaversineM(f.last.Latitude, f.last.Longitude, p.Latitude, p.Longitude)
		if d > minStepM && d < maxStepM {
			f.distanceM += d
		}
	}

	last := p
	f.last = &last
	return true
}

// DistanceM returns the cumulative session distance in meters.
func (f *Filter) DistanceM() float64 {
	return f.distanceM
}

// Reset clears the filter state for a new session.
func (f *Filter) Reset() {
	f.last = nil
	f.distanceM = 0
}
