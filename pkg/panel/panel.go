// Package panel is a Fyne widget that stands in for the monitor's front
// panel: two multiplexed seven-segment digits and the safe/unsafe LEDs.
// It is driven through hw.Line values exactly like the real board.
package panel

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/pmmon/pkg/display"
	"github.com/itohio/pmmon/pkg/hw"
)

// Panel is a custom Fyne widget that renders the front panel.
type Panel struct {
	widget.BaseWidget

	// Line state (protected by mu)
	mu       sync.Mutex
	segments display.Segments
	enabled  [display.NumDigits]bool
	shown    [display.NumDigits]display.Segments
	safe     bool
	unsafe   bool
	dirty    bool
}

// New creates a new Panel instance with every line released.
func New() *Panel {
	p := &Panel{}
	p.ExtendBaseWidget(p)
	return p
}

// SegmentLines returns the a-g segment lines.
func (p *Panel) SegmentLines() [display.NumSegments]hw.Line {
	var lines [display.NumSegments]hw.Line
	for i := range lines {
		bit := display.Segments(1) << i
		lines[i] = hw.LineFunc(func(high bool) { p.setSegment(bit, high) })
	}
	return lines
}

// EnableLines returns the digit-select lines, tens first.
func (p *Panel) EnableLines() [display.NumDigits]hw.Line {
	var lines [display.NumDigits]hw.Line
	for i := range lines {
		lines[i] = hw.LineFunc(func(high bool) { p.setEnable(i, high) })
	}
	return lines
}

// SafeLine returns the line driving the safe LED.
func (p *Panel) SafeLine() hw.Line {
	return hw.LineFunc(func(high bool) { p.setLED(&p.safe, high) })
}

// UnsafeLine returns the line driving the unsafe LED.
func (p *Panel) UnsafeLine() hw.Line {
	return hw.LineFunc(func(high bool) { p.setLED(&p.unsafe, high) })
}

// Shown returns the pattern last latched on digit position pos.
// A position keeps showing its pattern while disabled, the way the eye
// sees a multiplexed display.
func (p *Panel) Shown(pos int) display.Segments {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown[pos]
}

// LEDs returns the safe and unsafe LED levels.
func (p *Panel) LEDs() (safe, unsafe bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.safe, p.unsafe
}

// Flush refreshes the widget if any visible state changed since the last
// flush. Must be called on the Fyne goroutine (e.g. via fyne.Do).
func (p *Panel) Flush() bool {
	p.mu.Lock()
	dirty := p.dirty
	p.dirty = false
	p.mu.Unlock()

	if dirty {
		p.Refresh()
	}
	return dirty
}

func (p *Panel) setSegment(bit display.Segments, high bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if high {
		p.segments |= bit
	} else {
		p.segments &^= bit
	}
	for pos, on := range p.enabled {
		if on {
			p.latch(pos)
		}
	}
}

func (p *Panel) setEnable(pos int, high bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.enabled[pos] = high
	if high {
		p.latch(pos)
	}
}

func (p *Panel) latch(pos int) {
	if p.shown[pos] != p.segments {
		p.shown[pos] = p.segments
		p.dirty = true
	}
}

func (p *Panel) setLED(led *bool, high bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if *led != high {
		*led = high
		p.dirty = true
	}
}

// state returns a copy of the latched display state for the renderer.
func (p *Panel) state() (shown [display.NumDigits]display.Segments, safe, unsafe bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown, p.safe, p.unsafe
}

// CreateRenderer creates the widget renderer.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	return newRenderer(p)
}
