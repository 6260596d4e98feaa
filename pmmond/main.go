//go:build linux

// Command pmmond runs the pollution monitor headless on a Linux board: the
// sensor on a serial port and the front panel on GPIO lines.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/itohio/pmmon/pkg/config"
	"github.com/itohio/pmmon/pkg/display"
	"github.com/itohio/pmmon/pkg/gpio"
	"github.com/itohio/pmmon/pkg/indicator"
	"github.com/itohio/pmmon/pkg/logging"
	"github.com/itohio/pmmon/pkg/monitor"
	"github.com/itohio/pmmon/pkg/sensor"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., /dev/ttyAMA0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked sensor instead of serial port")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}
	if err := logging.Setup(cfg.Log, nil); err != nil {
		log.Warnf("Logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *mockFlag); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	log.Info("Stopped")
}

func run(ctx context.Context, cfg *config.Config, useMock bool) error {
	mode, err := cfg.ChecksumMode()
	if err != nil {
		return err
	}

	board, err := gpio.Open(cfg.GPIO)
	if err != nil {
		return err
	}
	defer board.Close()

	var device sensor.Device
	if useMock {
		device = sensor.NewMock(&cfg.Mock)
	} else {
		device = sensor.New(cfg.Serial.Port, cfg.Serial.BaudRate, sensor.DefaultBufferSize)
	}
	if err := device.Connect(); err != nil {
		return errors.Wrap(err, "failed to connect sensor")
	}
	defer device.Close()

	debounce := monitor.NewOneShot(cfg.Timing.DebouncePeriod)
	defer debounce.Stop()

	mon := monitor.New(monitor.Hardware{
		Indicator: indicator.New(board.SafeLED(), board.UnsafeLED()),
		Display:   display.NewMultiplexer(board.Segments(), board.Digits(), display.SevenSegment),
		Debounce:  debounce,
	}, mode)

	var last monitor.Snapshot
	mon.OnUpdate(func(s monitor.Snapshot) {
		fields := log.Fields{
			"pm1_0":    s.Averages[0],
			"pm2_5":    s.Averages[1],
			"pm10":     s.Averages[2],
			"channel":  s.Channel.String(),
			"display":  s.Digits.Value(),
			"level":    s.Indicator.String(),
			"frames":   s.Frames,
			"overruns": s.Overruns,
		}
		if s.Selected != last.Selected || s.Indicator != last.Indicator {
			log.WithFields(fields).Info("Display changed")
		} else {
			log.WithFields(fields).Debug("Frame")
		}
		last = s
	})

	if err := board.WatchButtons(mon.HandleEdge); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"source":    sourceName(cfg, useMock),
		"chip":      cfg.GPIO.Chip,
		"checksum":  mode.String(),
		"multiplex": cfg.Timing.MultiplexPeriod,
		"debounce":  debounce.Period(),
	}).Info("Monitoring")
	return mon.Serve(ctx, device.Bytes(), cfg.Timing.MultiplexPeriod)
}

func sourceName(cfg *config.Config, useMock bool) string {
	if useMock {
		return "mocked sensor"
	}
	return cfg.Serial.Port
}
