package main

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/itohio/pmmon/pkg/display"
	"github.com/itohio/pmmon/pkg/indicator"
	"github.com/itohio/pmmon/pkg/monitor"
	"github.com/itohio/pmmon/pkg/sensor"
)

// session ties one connected sensor to one running monitor. Averages start
// empty on every connect, as they do after a power cycle of the board.
type session struct {
	device   sensor.Device
	monitor  *monitor.Monitor
	debounce *monitor.OneShot
	cancel   context.CancelFunc
	done     chan struct{} // Closed when Serve returns
}

// startSession connects device, wires a monitor to the panel lines and
// starts serving the byte stream.
func startSession(state *appState, device sensor.Device) (*session, error) {
	mode, err := state.cfg.ChecksumMode()
	if err != nil {
		return nil, err
	}

	if err := device.Connect(); err != nil {
		if state.useMock {
			return nil, errors.Wrap(err, "failed to connect to mocked sensor")
		}
		return nil, errors.Wrapf(err, "failed to connect to %s", state.cfg.Serial.Port)
	}
	if !device.IsConnected() {
		return nil, sensor.ErrNotConnected
	}

	debounce := monitor.NewOneShot(state.cfg.Timing.DebouncePeriod)
	m := monitor.New(monitor.Hardware{
		Indicator: indicator.New(state.panel.SafeLine(), state.panel.UnsafeLine()),
		Display:   display.NewMultiplexer(state.panel.SegmentLines(), state.panel.EnableLines(), display.SevenSegment),
		Debounce:  debounce,
	}, mode)

	// Snapshots arrive on the foreground loop goroutine
	m.OnUpdate(func(s monitor.Snapshot) {
		fyne.Do(func() {
			state.status.update(s)
			updateSelectButtons(state, s.Selected)
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		device:   device,
		monitor:  m,
		debounce: debounce,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		err := m.Serve(ctx, device.Bytes(), state.cfg.Timing.MultiplexPeriod)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("Monitor stopped: %v", err)
		}
		log.Debug("Monitor loop exited")
	}()

	log.Debugf("Debounce period %v", debounce.Period())
	if state.useMock {
		log.Info("Connected to mocked sensor")
	} else {
		log.Infof("Connected to serial port: %s", state.cfg.Serial.Port)
	}
	snap := m.Snapshot()
	state.status.update(snap)
	updateSelectButtons(state, snap.Selected)

	return s, nil
}

// close stops the monitor and the device and waits for Serve to return.
func (s *session) close() {
	// Closing the device closes its byte channel, which ends Serve
	if err := s.device.Close(); err != nil {
		log.Warnf("Closing sensor: %v", err)
	}
	s.cancel()
	<-s.done
	s.debounce.Stop()
	log.Info("Disconnected")
}

// showError displays err in a dialog on the main window.
func showError(state *appState, err error) {
	log.Error(err)
	dialog.ShowError(err, state.window)
}
