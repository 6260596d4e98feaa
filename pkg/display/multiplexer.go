package display

import "github.com/itohio/pmmon/pkg/hw"

// NumDigits is the number of digit positions.
const NumDigits = 2

// Multiplexer time-shares one set of segment lines between two digit
// positions. Tick is called from the periodic multiplex timer, which owns
// the active index and the enable lines; SetDigits is called by the
// foreground loop inside a critical section.
type Multiplexer struct {
	segments [NumSegments]hw.Line
	enable   [NumDigits]hw.Line
	font     Font

	digits Digits
	active int
}

// NewMultiplexer creates a multiplexer with both positions disabled.
// A nil font selects SevenSegment.
func NewMultiplexer(segments [NumSegments]hw.Line, enable [NumDigits]hw.Line, font Font) *Multiplexer {
	if font == nil {
		font = SevenSegment
	}
	m := &Multiplexer{
		segments: segments,
		enable:   enable,
		font:     font,
		active:   NumDigits - 1, // first tick lights the tens position
	}
	for _, e := range m.enable {
		e.Set(false)
	}
	return m
}

// SetDigits replaces the digits rendered from the next tick on.
func (m *Multiplexer) SetDigits(d Digits) {
	m.digits = d
}

// Digits returns the digits being rendered.
func (m *Multiplexer) Digits() Digits {
	return m.digits
}

// Active returns the position that is currently enabled.
func (m *Multiplexer) Active() int {
	return m.active
}

// Tick switches to the other digit position. Both positions are disabled
// before the shared segment lines change, so the newly enabled digit never
// shows the previous digit's pattern.
func (m *Multiplexer) Tick() {
	m.active = (m.active + 1) % NumDigits

	for _, e := range m.enable {
		e.Set(false)
	}

	pattern := m.font(m.digits.At(m.active))
	for i, s := range m.segments {
		s.Set(pattern.Lit(i))
	}

	m.enable[m.active].Set(true)
}
