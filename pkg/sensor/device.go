package sensor

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

const (
	// DefaultBaudRate is the fixed output rate of the PMSA003 sensor.
	DefaultBaudRate = 9600
	// DefaultBufferSize is the default size for the bytes channel buffer.
	DefaultBufferSize = 1024

	readTimeout = 100 * time.Millisecond
)

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial reads the sensor stream from a serial port.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn      serial.Port
	bytes     chan byte
	mu        sync.RWMutex
	cancel    context.CancelFunc
	done      chan struct{}
	connected bool
}

// New creates a new Serial instance with the specified port, baud rate, and buffer size.
func New(port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	return &Serial{
		port:     port,
		baudRate: baudRate,
		bufSize:  bufSize,
		bytes:    make(chan byte, bufSize),
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list serial ports")
	}

	result := make([]Port, 0, len(details))
	for _, d := range details {
		desc := d.Name
		if d.IsUSB {
			desc = d.VID + ":" + d.PID
			if d.Product != "" {
				desc = d.Product
			}
		}
		result = append(result, Port{
			Name:        d.Name,
			Description: desc,
		})
	}

	return result, nil
}

// Connect opens the serial port (8N1) and starts reading bytes.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return ErrAlreadyConnected
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(d.port, mode)
	if err != nil {
		return errors.Wrapf(err, "failed to open serial port %s", d.port)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return errors.Wrapf(err, "failed to set read timeout on %s", d.port)
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.conn = port
	d.cancel = cancel
	d.done = make(chan struct{})
	d.bytes = make(chan byte, d.bufSize)
	d.connected = true

	go func(out chan byte, done chan struct{}) {
		defer close(done)
		defer close(out)
		pump(ctx, port, out)
	}(d.bytes, d.done)

	return nil
}

// Close stops reading and closes the port. The bytes channel is closed
// once the reader has exited.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	d.cancel()

	var err error
	if d.conn != nil {
		err = d.conn.Close()
		d.conn = nil
	}
	<-d.done

	d.connected = false

	return errors.Wrap(err, "failed to close serial port")
}

// Bytes returns the channel for reading the sensor stream.
func (d *Serial) Bytes() <-chan byte {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.bytes
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// pump copies bytes from r to out until ctx is cancelled or r fails.
// A zero-length read is a read timeout. Bytes that do not fit in out are
// dropped; the frame receiver resynchronizes on the next start marker.
func pump(ctx context.Context, r io.Reader, out chan<- byte) {
	buf := make([]byte, 64)
	dropped := 0

	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case out <- b:
			case <-ctx.Done():
				return
			default:
				dropped++
			}
		}
		if dropped > 0 {
			log.Warnf("Bytes channel full, dropped %d bytes", dropped)
			dropped = 0
		}

		if err != nil {
			if ctx.Err() == nil && err != io.EOF {
				log.Errorf("Error reading from serial port: %v", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}
