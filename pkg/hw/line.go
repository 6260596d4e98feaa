// Package hw defines the digital line abstraction the monitor core drives.
// machine.Pin satisfies Line directly, so firmware passes pins unchanged.
package hw

// Line is a single digital output.
type Line interface {
	Set(high bool)
}

// LineFunc adapts a plain function to Line.
type LineFunc func(high bool)

// Set calls f(high).
func (f LineFunc) Set(high bool) {
	f(high)
}

// activeLow inverts the logical level before it reaches the wrapped line.
type activeLow struct {
	line Line
}

func (a activeLow) Set(active bool) {
	a.line.Set(!active)
}

// ActiveLow wraps a line that is asserted by driving it low, e.g. the
// common-anode segment and digit-select lines on the original board.
func ActiveLow(line Line) Line {
	return activeLow{line: line}
}

// Nop is a line that ignores every write.
var Nop Line = LineFunc(func(bool) {})
