// Package monitor owns all state of the pollution monitor and exposes one
// entry point per interrupt source plus the foreground Poll.
//
// Handlers (HandleByte, HandleEdge, HandleDebounce, HandleMultiplexTick) are
// short and never block. Poll is the body of the foreground loop: it
// consumes "frame ready" first, then "selection pending", each with a
// read-act-clear sequence inside the critical section.
package monitor

import (
	"sync"
	"time"

	"github.com/itohio/pmmon/pkg/average"
	"github.com/itohio/pmmon/pkg/critical"
	"github.com/itohio/pmmon/pkg/display"
	"github.com/itohio/pmmon/pkg/frame"
	"github.com/itohio/pmmon/pkg/hw"
	"github.com/itohio/pmmon/pkg/indicator"
	"github.com/itohio/pmmon/pkg/selector"
)

const (
	// DefaultMultiplexPeriod is the display refresh period per digit.
	DefaultMultiplexPeriod = 5 * time.Millisecond
	// DefaultDebouncePeriod is the button confirmation delay.
	DefaultDebouncePeriod = 100 * time.Millisecond
)

// Timer is a one-shot timer. Start (re)arms it; fire runs once on expiry,
// never synchronously from within Start.
type Timer interface {
	Start(fire func())
}

// Hardware bundles the collaborators the monitor drives.
// Nil fields are replaced with host defaults.
type Hardware struct {
	Section   critical.Section
	Indicator *indicator.Indicator
	Display   *display.Multiplexer
	Debounce  Timer
}

// Snapshot is a consistent copy of the observable state.
type Snapshot struct {
	Averages  frame.Readings // unclamped
	Selected  selector.Button
	Channel   frame.Channel
	Digits    display.Digits
	Indicator indicator.State
	Frames    uint64 // frames recorded
	Overruns  uint64 // frames replaced before the foreground consumed them
}

// Monitor is the owned state container.
type Monitor struct {
	cs critical.Section

	// serial interrupt only
	rx frame.Receiver

	// shared, guarded by cs
	latest     frame.Readings
	frameReady bool
	overruns   uint64
	pending    selector.Button
	hasPending bool
	sel        *selector.Selector

	// written by the foreground under cs, read by Snapshot
	store    *average.Store
	selected selector.Button
	ind      *indicator.Indicator
	mux      *display.Multiplexer
	debounce Timer
	frames   uint64

	wake chan struct{}

	callbacks []func(Snapshot)
	cbMu      sync.RWMutex
}

// New creates a monitor. Channel A (PM2.5) is selected initially.
func New(h Hardware, mode frame.ChecksumMode) *Monitor {
	if h.Section == nil {
		h.Section = &critical.Mutex{}
	}
	if h.Indicator == nil {
		h.Indicator = indicator.New(hw.Nop, hw.Nop)
	}
	if h.Display == nil {
		var segs [display.NumSegments]hw.Line
		for i := range segs {
			segs[i] = hw.Nop
		}
		h.Display = display.NewMultiplexer(segs, [display.NumDigits]hw.Line{hw.Nop, hw.Nop}, nil)
	}
	if h.Debounce == nil {
		h.Debounce = NewOneShot(DefaultDebouncePeriod)
	}

	m := &Monitor{
		cs:       h.Section,
		rx:       frame.NewReceiver(mode),
		store:    average.NewStore(),
		selected: selector.ButtonA,
		ind:      h.Indicator,
		mux:      h.Display,
		debounce: h.Debounce,
		wake:     make(chan struct{}, 1),
	}
	m.sel = selector.New(selector.TimerFunc(func() {
		m.debounce.Start(m.HandleDebounce)
	}))
	return m
}

// ChannelOf maps a select button to the channel it shows.
func ChannelOf(b selector.Button) frame.Channel {
	if b == selector.ButtonB {
		return frame.PM10
	}
	return frame.PM2_5
}

// HandleByte is the serial receive handler.
func (m *Monitor) HandleByte(b byte) {
	var readings frame.Readings
	var ok bool
	m.rx, readings, ok = m.rx.Next(b)
	if !ok {
		return
	}

	critical.Do(m.cs, func() {
		if m.frameReady {
			m.overruns++
		}
		m.latest = readings
		m.frameReady = true
	})
	m.signal()
}

// HandleEdge is the button edge handler.
func (m *Monitor) HandleEdge(b selector.Button) {
	critical.Do(m.cs, func() {
		m.sel.Edge(b)
	})
}

// HandleDebounce is the debounce timer handler.
func (m *Monitor) HandleDebounce() {
	var pressed bool
	critical.Do(m.cs, func() {
		b, ok := m.sel.Expire()
		if ok {
			m.pending = b
			m.hasPending = true
			pressed = true
		}
	})
	if pressed {
		m.signal()
	}
}

// HandleMultiplexTick is the display timer handler.
func (m *Monitor) HandleMultiplexTick() {
	critical.Do(m.cs, m.mux.Tick)
}

// Poll runs one foreground iteration without blocking. It reports whether
// any event was consumed.
func (m *Monitor) Poll() bool {
	var readings frame.Readings
	var ready bool
	critical.Do(m.cs, func() {
		readings, ready = m.latest, m.frameReady
		m.frameReady = false
	})
	if ready {
		critical.Do(m.cs, func() {
			m.store.Record(readings)
			m.frames++
			m.render()
		})
	}

	var pressed bool
	critical.Do(m.cs, func() {
		if !m.hasPending {
			return
		}
		m.selected = m.pending
		m.render()
		m.hasPending = false
		pressed = true
	})

	if ready || pressed {
		m.notify()
	}
	return ready || pressed
}

// render pushes the selected channel to the display and the indicator.
// Must be called inside the critical section.
func (m *Monitor) render() {
	ch := ChannelOf(m.selected)
	m.mux.SetDigits(display.Encode(m.store.Display(ch)))
	m.ind.Drive(m.store.Average(ch))
}

// Snapshot returns a copy of the current state.
func (m *Monitor) Snapshot() Snapshot {
	var s Snapshot
	critical.Do(m.cs, func() {
		s = Snapshot{
			Averages:  m.store.Averages(),
			Selected:  m.selected,
			Channel:   ChannelOf(m.selected),
			Digits:    m.mux.Digits(),
			Indicator: m.ind.State(),
			Frames:    m.frames,
			Overruns:  m.overruns,
		}
	})
	return s
}

// OnUpdate registers fn to be called from the foreground loop after every
// iteration that consumed an event.
func (m *Monitor) OnUpdate(fn func(Snapshot)) {
	m.cbMu.Lock()
	defer m.cbMu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

func (m *Monitor) notify() {
	m.cbMu.RLock()
	callbacks := make([]func(Snapshot), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.cbMu.RUnlock()
	if len(callbacks) == 0 {
		return
	}

	s := m.Snapshot()
	for _, cb := range callbacks {
		cb(s)
	}
}

// signal wakes the foreground loop without blocking.
func (m *Monitor) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}
