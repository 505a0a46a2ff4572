package values

import "sync"

// Warning records a soft failure of a tree operation. Operations are total:
// invalid input degrades to a no-op plus a warning rather than an error.
type Warning struct {
	Op     string
	Path   Path
	Reason string
}

// WarningSink receives operation warnings.
type WarningSink interface {
	Record(w Warning)
}

// Recorder is a threadsafe in-memory sink used by the editor session and by
// tests asserting fail-soft behaviour.
type Recorder struct {
	mu       sync.Mutex
	warnings []Warning
}

// NewRecorder constructs an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends the warning.
func (r *Recorder) Record(w Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, w)
}

// All returns a copy of the recorded warnings.
func (r *Recorder) All() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Warning(nil), r.warnings...)
}

// Reset clears the recorder.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = nil
}

type discardSink struct{}

func (discardSink) Record(Warning) {}
