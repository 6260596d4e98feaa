//go:build tinygo

//go:generate tinygo flash -target=pico

package main

import (
	"machine"
	"runtime/interrupt"
	"time"

	"github.com/itohio/pmmon/pkg/display"
	"github.com/itohio/pmmon/pkg/frame"
	"github.com/itohio/pmmon/pkg/hw"
	"github.com/itohio/pmmon/pkg/indicator"
	"github.com/itohio/pmmon/pkg/monitor"
	"github.com/itohio/pmmon/pkg/selector"
)

var (
	uart = machine.UART0

	segmentPins = [display.NumSegments]machine.Pin{
		PIN_SEG_A, PIN_SEG_B, PIN_SEG_C, PIN_SEG_D, PIN_SEG_E, PIN_SEG_F, PIN_SEG_G,
	}
	digitPins = [display.NumDigits]machine.Pin{PIN_DIGIT_TENS, PIN_DIGIT_UNITS}
)

// irqSection masks interrupts for the duration of a critical section.
// Sections never nest, so one saved state is enough.
type irqSection struct {
	state interrupt.State
}

func (s *irqSection) Enter() { s.state = interrupt.Disable() }
func (s *irqSection) Exit()  { interrupt.Restore(s.state) }

// debounceTimer is a one-shot timer polled by its own goroutine. Start may
// be called from a pin interrupt, so it only records a deadline.
type debounceTimer struct {
	period   time.Duration
	fire     func()
	deadline time.Time
	armed    bool
}

func (t *debounceTimer) Start(fire func()) {
	state := interrupt.Disable()
	t.fire = fire
	t.deadline = time.Now().Add(t.period)
	t.armed = true
	interrupt.Restore(state)
}

func (t *debounceTimer) run() {
	for {
		time.Sleep(DEBOUNCE_POLL_MS * time.Millisecond)

		var fire func()
		state := interrupt.Disable()
		if t.armed && !time.Now().Before(t.deadline) {
			t.armed = false
			fire = t.fire
		}
		interrupt.Restore(state)

		if fire != nil {
			fire()
		}
	}
}

func main() {
	// Configure output lines; everything starts dark
	var segments [display.NumSegments]hw.Line
	for i, pin := range segmentPins {
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		segments[i] = hw.ActiveLow(pin)
	}
	var digits [display.NumDigits]hw.Line
	for i, pin := range digitPins {
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		digits[i] = hw.ActiveLow(pin)
	}
	PIN_LED_SAFE.Configure(machine.PinConfig{Mode: machine.PinOutput})
	PIN_LED_UNSAFE.Configure(machine.PinConfig{Mode: machine.PinOutput})

	// Configure UART for the sensor stream
	uart.Configure(machine.UARTConfig{
		BaudRate: SENSOR_BAUD_RATE,
		TX:       PIN_SENSOR_TX,
		RX:       PIN_SENSOR_RX,
	})
	uart.SetFormat(8, 1, machine.ParityNone)

	debounce := &debounceTimer{period: DEBOUNCE_PERIOD_MS * time.Millisecond}
	mon := monitor.New(monitor.Hardware{
		Section:   &irqSection{},
		Indicator: indicator.New(PIN_LED_SAFE, PIN_LED_UNSAFE),
		Display:   display.NewMultiplexer(segments, digits, display.SevenSegment),
		Debounce:  debounce,
	}, frame.Strict)

	mon.OnUpdate(func(s monitor.Snapshot) {
		println("pm1.0", s.Averages[0], "pm2.5", s.Averages[1], "pm10", s.Averages[2],
			"show", s.Channel.String(), s.Digits.Value(), s.Indicator.String())
	})

	// Select buttons: falling edge on press
	PIN_BUTTON_S3.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	PIN_BUTTON_S4.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	PIN_BUTTON_S3.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		mon.HandleEdge(selector.ButtonA)
	})
	PIN_BUTTON_S4.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		mon.HandleEdge(selector.ButtonB)
	})

	go debounce.run()
	go multiplex(mon)
	go receive(mon)

	// Foreground loop
	for {
		if !mon.Poll() {
			time.Sleep(IDLE_SLEEP_MS * time.Millisecond)
		}
	}
}

// multiplex drives the display refresh.
func multiplex(mon *monitor.Monitor) {
	for {
		mon.HandleMultiplexTick()
		time.Sleep(MULTIPLEX_PERIOD_MS * time.Millisecond)
	}
}

// receive drains the UART receive buffer into the frame receiver.
func receive(mon *monitor.Monitor) {
	for {
		for uart.Buffered() > 0 {
			b, err := uart.ReadByte()
			if err != nil {
				break
			}
			mon.HandleByte(b)
		}
		time.Sleep(UART_POLL_MS * time.Millisecond)
	}
}
