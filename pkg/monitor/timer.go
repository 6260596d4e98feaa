package monitor

import (
	"sync"
	"time"
)

// OneShot is the host debounce timer backed by time.AfterFunc.
type OneShot struct {
	period time.Duration

	mu sync.Mutex
	t  *time.Timer
}

var _ Timer = (*OneShot)(nil)

// NewOneShot creates a stopped timer with the given period.
func NewOneShot(period time.Duration) *OneShot {
	if period <= 0 {
		period = DefaultDebouncePeriod
	}
	return &OneShot{period: period}
}

// Start arms the timer, cancelling a pending expiry.
func (o *OneShot) Start(fire func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.t != nil {
		o.t.Stop()
	}
	o.t = time.AfterFunc(o.period, fire)
}

// Stop cancels a pending expiry.
func (o *OneShot) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.t != nil {
		o.t.Stop()
		o.t = nil
	}
}

// Period returns the configured period.
func (o *OneShot) Period() time.Duration {
	return o.period
}
