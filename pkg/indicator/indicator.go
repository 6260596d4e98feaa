// Package indicator maps a channel average to the safe/unsafe LEDs.
package indicator

import "github.com/itohio/pmmon/pkg/hw"

// SafeLimit is the highest average (ug/m3) still considered safe.
const SafeLimit = 50

// State is the indicator decision.
type State int

const (
	Safe State = iota
	Unsafe
)

func (s State) String() string {
	if s == Unsafe {
		return "unsafe"
	}
	return "safe"
}

// Evaluate returns Unsafe when avg exceeds SafeLimit.
func Evaluate(avg uint16) State {
	if avg > SafeLimit {
		return Unsafe
	}
	return Safe
}

// Indicator drives a pair of mutually exclusive LEDs.
type Indicator struct {
	safe   hw.Line
	unsafe hw.Line
	state  State
}

// New creates an indicator on the given lines. Both lines are switched off.
func New(safe, unsafe hw.Line) *Indicator {
	safe.Set(false)
	unsafe.Set(false)
	return &Indicator{safe: safe, unsafe: unsafe}
}

// Drive evaluates avg and lights exactly one LED. The LED that goes dark is
// always switched before the other is lit, so both are never on together.
func (i *Indicator) Drive(avg uint16) State {
	i.state = Evaluate(avg)
	if i.state == Unsafe {
		i.safe.Set(false)
		i.unsafe.Set(true)
	} else {
		i.unsafe.Set(false)
		i.safe.Set(true)
	}
	return i.state
}

// State returns the last driven decision.
func (i *Indicator) State() State {
	return i.state
}
