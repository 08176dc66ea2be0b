package breaker

import (
	"sync"
	"time"

	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/errs"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var ErrOpen = errs.New("circuit breaker is open")

type Settings struct {
	// Window is the rolling period over which outcomes are tallied.
	Window time.Duration
	// BucketWidth is the resolution of the rolling window.
	BucketWidth time.Duration
	// MinCalls is the least number of calls in the window before it can trip.
	MinCalls int
	// FailureRatio trips the breaker when failures/calls exceeds it.
	FailureRatio float64
	// Cooldown is how long the breaker stays open before admitting a trial call.
	Cooldown time.Duration
	// OnStateChange is called outside the lock after every transition.
	OnStateChange func(name string, from, to State)
}

func DefaultSettings() Settings {
	return Settings{
		Window:       60 * time.Second,
		BucketWidth:  time.Second,
		MinCalls:     10,
		FailureRatio: 0.5,
		Cooldown:     30 * time.Second,
	}
}

type bucket struct {
	key       int64
	successes int
	failures  int
}

// Breaker guards one external dependency. A single instance is shared by
// every caller of that dependency.
type Breaker struct {
	name     string
	settings Settings
	clock    clock.Clock

	mu            sync.Mutex
	state         State
	generation    uint64
	buckets       []bucket
	openedAt      time.Time
	trialInFlight bool
}

func New(name string, settings Settings, clk clock.Clock) *Breaker {
	def := DefaultSettings()
	if settings.Window <= 0 {
		settings.Window = def.Window
	}
	if settings.BucketWidth <= 0 {
		settings.BucketWidth = def.BucketWidth
	}
	if settings.MinCalls <= 0 {
		settings.MinCalls = def.MinCalls
	}
	if settings.FailureRatio <= 0 || settings.FailureRatio >= 1 {
		settings.FailureRatio = def.FailureRatio
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = def.Cooldown
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}
	n := int(settings.Window / settings.BucketWidth)
	if n < 1 {
		n = 1
	}
	return &Breaker{
		name:     name,
		settings: settings,
		clock:    clk,
		state:    StateClosed,
		buckets:  make([]bucket, n),
	}
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() State {
	b.mu.Lock()
	from, to := b.state, b.advanceLocked(b.clock.Now())
	b.mu.Unlock()
	b.notify(from, to)
	return to
}

// Allow asks permission for one call. On success the caller must invoke done
// exactly once with the call's outcome.
func (b *Breaker) Allow() (done func(success bool), err error) {
	b.mu.Lock()
	now := b.clock.Now()
	from := b.state
	state := b.advanceLocked(now)

	switch state {
	case StateOpen:
		b.mu.Unlock()
		b.notify(from, state)
		return nil, ErrOpen
	case StateHalfOpen:
		if b.trialInFlight {
			b.mu.Unlock()
			b.notify(from, state)
			return nil, ErrOpen
		}
		b.trialInFlight = true
		gen := b.generation
		b.mu.Unlock()
		b.notify(from, state)
		return b.doneFunc(gen, true), nil
	default:
		gen := b.generation
		b.mu.Unlock()
		b.notify(from, state)
		return b.doneFunc(gen, false), nil
	}
}

// Do runs fn under the breaker, counting any error as a failure.
func (b *Breaker) Do(fn func() error) error {
	done, err := b.Allow()
	if err != nil {
		return err
	}
	err = fn()
	done(err == nil)
	return err
}

// Counts returns the outcomes currently inside the rolling window.
func (b *Breaker) Counts() (successes, failures int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.countsLocked(b.clock.Now())
}

func (b *Breaker) doneFunc(gen uint64, trial bool) func(bool) {
	var once sync.Once
	return func(success bool) {
		once.Do(func() {
			b.mu.Lock()
			now := b.clock.Now()
			from := b.state
			to := b.recordLocked(gen, trial, success, now)
			b.mu.Unlock()
			b.notify(from, to)
		})
	}
}

func (b *Breaker) recordLocked(gen uint64, trial, success bool, now time.Time) State {
	if trial {
		b.trialInFlight = false
		if gen != b.generation || b.state != StateHalfOpen {
			return b.state
		}
		if success {
			b.transitionLocked(StateClosed, now)
		} else {
			b.transitionLocked(StateOpen, now)
		}
		return b.state
	}

	// Outcomes of calls admitted before the last transition are stale.
	if gen != b.generation || b.state != StateClosed {
		return b.state
	}

	bk := b.bucketLocked(now)
	if success {
		bk.successes++
	} else {
		bk.failures++
	}

	successes, failures := b.countsLocked(now)
	total := successes + failures
	if total >= b.settings.MinCalls && float64(failures) > b.settings.FailureRatio*float64(total) {
		b.transitionLocked(StateOpen, now)
	}
	return b.state
}

func (b *Breaker) advanceLocked(now time.Time) State {
	if b.state == StateOpen && now.Sub(b.openedAt) >= b.settings.Cooldown {
		b.transitionLocked(StateHalfOpen, now)
	}
	return b.state
}

func (b *Breaker) transitionLocked(to State, now time.Time) {
	if b.state == to {
		return
	}
	b.state = to
	b.generation++
	switch to {
	case StateOpen:
		b.openedAt = now
		b.trialInFlight = false
	case StateClosed:
		b.resetWindowLocked()
	case StateHalfOpen:
		b.trialInFlight = false
	}
}

func (b *Breaker) bucketLocked(now time.Time) *bucket {
	key := now.UnixNano() / int64(b.settings.BucketWidth)
	idx := int(key % int64(len(b.buckets)))
	if idx < 0 {
		idx += len(b.buckets)
	}
	bk := &b.buckets[idx]
	if bk.key != key {
		*bk = bucket{key: key}
	}
	return bk
}

func (b *Breaker) countsLocked(now time.Time) (successes, failures int) {
	key := now.UnixNano() / int64(b.settings.BucketWidth)
	oldest := key - int64(len(b.buckets)) + 1
	for _, bk := range b.buckets {
		if bk.key >= oldest && bk.key <= key && (bk.successes > 0 || bk.failures > 0) {
			successes += bk.successes
			failures += bk.failures
		}
	}
	return successes, failures
}

func (b *Breaker) resetWindowLocked() {
	for i := range b.buckets {
		b.buckets[i] = bucket{}
	}
}

func (b *Breaker) notify(from, to State) {
	if from != to && b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, from, to)
	}
}
