package hw

import "sync"

// Change is a single recorded write.
type Change struct {
	Name  string
	Level bool
}

// Recorder hands out named lines and logs every write in order.
// It is used by tests to assert output sequencing.
type Recorder struct {
	mu      sync.Mutex
	changes []Change
	levels  map[string]bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		changes: make([]Change, 0, 64),
		levels:  make(map[string]bool),
	}
}

// Line returns a line that records its writes under name.
func (r *Recorder) Line(name string) Line {
	return LineFunc(func(high bool) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.changes = append(r.changes, Change{Name: name, Level: high})
		r.levels[name] = high
	})
}

// Changes returns a copy of the recorded writes.
func (r *Recorder) Changes() []Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Change, len(r.changes))
	copy(out, r.changes)
	return out
}

// Level returns the last level written to name (false if never written).
func (r *Recorder) Level(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.levels[name]
}

// Reset drops the recorded history but keeps the current levels.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = r.changes[:0]
}
