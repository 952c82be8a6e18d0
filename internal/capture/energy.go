package capture

import "math"

const (
	energyMax       = 100.0
	rechargePerTick = 0.1
	drainPerTick    = 0.2
	minStartEnergy  = 10.0
)

// Energy models the capture stamina bar. It recharges while the runner moves
// without capturing and drains while a capture is active.
type Energy struct {
	level float64
}

func NewEnergy() Energy {
	return Energy{level: energyMax}
}

// Tick advances one recharge cycle. It reports false when the bar has run dry
// and an active capture must stop.
func (e *Energy) Tick(capturing bool) bool {
	if capturing {
		e.level = math.Max(0, e.level-drainPerTick)
		return e.level > 0
	}
	e.level = math.Min(energyMax, e.level+rechargePerTick)
	return true
}

// Level returns the current stamina in the 0-100 range.
func (e Energy) Level() float64 {
	return e.level
}

// CanStart reports whether there is enough stamina to begin a capture.
func (e Energy) CanStart() bool {
	return e.level >= minStartEnergy
}
