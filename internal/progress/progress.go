// Package progress reports batch completion to the host UI.
package progress

import "sync"

// Reporter receives the batch completion percentage after each file
type Reporter interface {
	// Progress is called with a value in [0,100]; values outside the range
	// are clamped by implementations
	Progress(percent float64)

	// Reset marks the start of a new batch; monotonic state must not carry
	// over from the previous one
	Reset()
}

// Callback is a function that receives progress updates
type Callback func(percent float64)

// CallbackReporter forwards clamped, monotonically non-decreasing progress
// to a callback
type CallbackReporter struct {
	mu       sync.Mutex
	callback Callback
	last     float64
}

// NewCallbackReporter creates a reporter around the callback
func NewCallbackReporter(cb Callback) *CallbackReporter {
	return &CallbackReporter{callback: cb}
}

// Progress clamps percent to [0,100], never reports a value below the last
// one, and invokes the callback
func (r *CallbackReporter) Progress(percent float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent < r.last {
		percent = r.last
	}
	r.last = percent

	if r.callback != nil {
		r.callback(percent)
	}
}

// Reset prepares the reporter for a new batch
func (r *CallbackReporter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = 0
}
