// Package selector debounces the two channel-select buttons.
//
// The state machine is two-state: Idle and Debouncing(candidate). An edge
// in Idle captures the button and arms the one-shot debounce timer. Further
// edges are ignored until the timer fires, at which point the candidate is
// reported as an accepted press.
package selector

// Button identifies one of the two select buttons.
type Button int

const (
	ButtonA Button = iota // S3
	ButtonB               // S4
)

func (b Button) String() string {
	if b == ButtonB {
		return "B"
	}
	return "A"
}

// Event is an input to the state machine.
type Event int

const (
	EdgeA Event = iota
	EdgeB
	Timeout
)

// EdgeOf returns the edge event raised by b.
func EdgeOf(b Button) Event {
	if b == ButtonB {
		return EdgeB
	}
	return EdgeA
}

// State is the debounce state. The zero value is Idle.
type State struct {
	debouncing bool
	candidate  Button
}

// Debouncing reports whether a press is being confirmed, and for which button.
func (s State) Debouncing() (Button, bool) {
	return s.candidate, s.debouncing
}

// Output is what a transition asks of its caller.
type Output struct {
	Arm     bool   // start the debounce timer
	Pressed bool   // a press was confirmed
	Button  Button // confirmed button, valid when Pressed
}

// Next is the transition function.
func (s State) Next(e Event) (State, Output) {
	switch e {
	case EdgeA, EdgeB:
		if s.debouncing {
			return s, Output{}
		}
		b := ButtonA
		if e == EdgeB {
			b = ButtonB
		}
		return State{debouncing: true, candidate: b}, Output{Arm: true}
	case Timeout:
		if !s.debouncing {
			return s, Output{}
		}
		return State{}, Output{Pressed: true, Button: s.candidate}
	}
	return s, Output{}
}

// Timer is a one-shot timer already bound to its expiry handler.
type Timer interface {
	Start()
}

// TimerFunc adapts a function to Timer.
type TimerFunc func()

// Start calls f.
func (f TimerFunc) Start() {
	f()
}

// Selector runs the state machine and arms its timer.
type Selector struct {
	state State
	timer Timer
}

// New creates an idle selector.
func New(timer Timer) *Selector {
	return &Selector{timer: timer}
}

// Edge handles a raw edge on b. Call from the button interrupt.
func (s *Selector) Edge(b Button) {
	var out Output
	s.state, out = s.state.Next(EdgeOf(b))
	if out.Arm && s.timer != nil {
		s.timer.Start()
	}
}

// Expire handles the debounce timer. Call from the timer interrupt.
// It returns the confirmed button, if any.
func (s *Selector) Expire() (Button, bool) {
	var out Output
	s.state, out = s.state.Next(Timeout)
	return out.Button, out.Pressed
}

// State returns the current state.
func (s *Selector) State() State {
	return s.state
}
