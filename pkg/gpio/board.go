//go:build linux

// Package gpio drives the front panel through Linux GPIO character-device
// lines, for running the monitor on a single-board computer.
package gpio

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/warthog618/go-gpiocdev"

	"github.com/itohio/pmmon/pkg/config"
	"github.com/itohio/pmmon/pkg/display"
	"github.com/itohio/pmmon/pkg/hw"
	"github.com/itohio/pmmon/pkg/selector"
)

// Board holds the requested output and button lines.
type Board struct {
	cfg config.GPIOConfig

	segments [display.NumSegments]hw.Line
	digits   [display.NumDigits]hw.Line
	safe     hw.Line
	unsafe   hw.Line

	mu      sync.Mutex
	lines   []*gpiocdev.Line
	buttons []*gpiocdev.Line
}

// outputLine adapts a requested gpiocdev line to hw.Line. Write errors are
// logged; a display line has nobody to report them to.
type outputLine struct {
	line *gpiocdev.Line
}

func (o outputLine) Set(high bool) {
	if err := o.line.SetValue(level(high)); err != nil {
		log.Warnf("GPIO line %d: %v", o.line.Offset(), err)
	}
}

// Open requests every output line on cfg.Chip, released (inactive).
// Segment and digit lines are requested active-low when cfg.ActiveLow is
// set, so the monitor always writes logical levels.
func Open(cfg config.GPIOConfig) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Board{cfg: cfg}

	panelOpts := []gpiocdev.LineReqOption{gpiocdev.AsOutput(0)}
	if cfg.ActiveLow {
		panelOpts = append(panelOpts, gpiocdev.AsActiveLow)
	}

	for i, offset := range cfg.Segments {
		line, err := b.request(offset, panelOpts...)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.segments[i] = line
	}
	for i, offset := range cfg.Digits {
		line, err := b.request(offset, panelOpts...)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.digits[i] = line
	}

	var err error
	if b.safe, err = b.request(cfg.SafeLED, gpiocdev.AsOutput(0)); err != nil {
		b.Close()
		return nil, err
	}
	if b.unsafe, err = b.request(cfg.UnsafeLED, gpiocdev.AsOutput(0)); err != nil {
		b.Close()
		return nil, err
	}

	return b, nil
}

func (b *Board) request(offset int, opts ...gpiocdev.LineReqOption) (hw.Line, error) {
	line, err := gpiocdev.RequestLine(b.cfg.Chip, offset, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to request %s line %d", b.cfg.Chip, offset)
	}

	b.mu.Lock()
	b.lines = append(b.lines, line)
	b.mu.Unlock()

	return outputLine{line: line}, nil
}

// Segments returns the a-g segment lines.
func (b *Board) Segments() [display.NumSegments]hw.Line { return b.segments }

// Digits returns the digit-select lines, tens first.
func (b *Board) Digits() [display.NumDigits]hw.Line { return b.digits }

// SafeLED returns the safe indicator line.
func (b *Board) SafeLED() hw.Line { return b.safe }

// UnsafeLED returns the unsafe indicator line.
func (b *Board) UnsafeLED() hw.Line { return b.unsafe }

// WatchButtons requests both select buttons as pulled-up inputs and calls
// onEdge from the gpiocdev event goroutine on every falling edge.
func (b *Board) WatchButtons(onEdge func(selector.Button)) error {
	buttons := map[int]selector.Button{
		b.cfg.ButtonS3: selector.ButtonA,
		b.cfg.ButtonS4: selector.ButtonB,
	}

	handler := func(evt gpiocdev.LineEvent) {
		if btn, ok := buttonFor(buttons, evt); ok {
			onEdge(btn)
		}
	}

	for _, offset := range []int{b.cfg.ButtonS3, b.cfg.ButtonS4} {
		line, err := gpiocdev.RequestLine(b.cfg.Chip, offset,
			gpiocdev.WithPullUp,
			gpiocdev.WithFallingEdge,
			gpiocdev.WithEventHandler(handler))
		if err != nil {
			return errors.Wrapf(err, "failed to request button line %d (pull-up needs Linux 5.5+)", offset)
		}

		b.mu.Lock()
		b.buttons = append(b.buttons, line)
		b.mu.Unlock()
	}
	return nil
}

// Close releases every requested line. Outputs are turned off first.
func (b *Board) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var first error
	for _, line := range b.buttons {
		if err := line.Close(); err != nil && first == nil {
			first = err
		}
	}
	for _, line := range b.lines {
		line.SetValue(0)
		if err := line.Close(); err != nil && first == nil {
			first = err
		}
	}
	b.buttons = nil
	b.lines = nil

	return errors.Wrap(first, "failed to release gpio lines")
}

// buttonFor maps a line event to the button it came from. Only falling
// edges count as presses.
func buttonFor(buttons map[int]selector.Button, evt gpiocdev.LineEvent) (selector.Button, bool) {
	if evt.Type != gpiocdev.LineEventFallingEdge {
		return 0, false
	}
	btn, ok := buttons[evt.Offset]
	return btn, ok
}

func level(high bool) int {
	if high {
		return 1
	}
	return 0
}
