package twin

import (
	"math/rand/v2"
	"sync"
	"time"
)

type Fault struct {
	Path       string        `json:"path"`
	StatusCode int           `json:"status_code"`
	Body       string        `json:"body,omitempty"`
	Delay      time.Duration `json:"delay,omitempty"`
	// Rate is the probability in (0, 1] that a request hits the fault.
	Rate float64 `json:"rate"`
	// Remaining limits how many requests fail; zero means unlimited.
	Remaining int `json:"remaining,omitempty"`
}

type faultRegistry struct {
	mu     sync.Mutex
	faults map[string]Fault
}

func newFaultRegistry() *faultRegistry {
	return &faultRegistry{faults: make(map[string]Fault)}
}

func (r *faultRegistry) set(f Fault) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.Rate <= 0 || f.Rate > 1 {
		f.Rate = 1
	}
	r.faults[f.Path] = f
}

func (r *faultRegistry) remove(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.faults[path]
	delete(r.faults, path)
	return ok
}

func (r *faultRegistry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faults = make(map[string]Fault)
}

// check returns the fault to apply to path, consuming one use of a limited
// fault.
func (r *faultRegistry) check(path string) (Fault, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.faults[path]
	if !ok {
		return Fault{}, false
	}
	if f.Rate < 1 && rand.Float64() >= f.Rate {
		return Fault{}, false
	}
	if f.Remaining > 0 {
		f.Remaining--
		if f.Remaining == 0 {
			delete(r.faults, path)
		} else {
			r.faults[path] = f
		}
	}
	return f, true
}
