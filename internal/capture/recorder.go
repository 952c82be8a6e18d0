package capture

// Recorder accumulates noise-filtered positions for one capture session.
// The path is append-only while the session runs and is cleared on Reset.
type Recorder struct {
	filter *Filter
	path   Path
}

func NewRecorder() *Recorder {
	return &Recorder{filter: NewFilter()}
}

// Record runs the fix through the noise filter and appends it on acceptance.
// It reports whether the fix was kept.
func (r *Recorder) Record(p Position) bool {
	if !r.filter.Accept(p) {
		return false
	}
	r.path = append(r.path, p)
	return true
}

// Path returns a copy of the recorded traversal.
func (r *Recorder) Path() Path {
	return r.path.Clone()
}

// Len returns the number of recorded positions.
func (r *Recorder) Len() int {
	return len(r.path)
}

// DistanceM returns the distance covered so far in meters.
func (r *Recorder) DistanceM() float64 {
	return r.filter.DistanceM()
}

// Reset clears the path and the distance counter.
func (r *Recorder) Reset() {
	r.path = nil
	r.filter.Reset()
}
