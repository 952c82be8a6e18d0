package capture

// Position is one GPS fix. Immutable once produced. Accuracy and Speed are
// zero when the sensor did not report them.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"` // milliseconds since epoch
	Accuracy  float64 `json:"accuracy,omitempty"`
	Speed     float64 `json:"speed,omitempty"`
}

// Path is an ordered traversal of accepted positions. Insertion order is the
// order the runner moved.
type Path []Position

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}
