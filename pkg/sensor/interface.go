// Package sensor provides byte sources for the particulate sensor stream:
// a real serial port and a mock that synthesizes sensor frames.
package sensor

import "github.com/pkg/errors"

var (
	ErrAlreadyConnected = errors.New("already connected")
	ErrNotConnected     = errors.New("not connected")
)

// Device defines the interface for sensor byte sources (real or mocked).
// Bytes is closed once the device stops producing after Close.
type Device interface {
	Connect() error
	Close() error
	Bytes() <-chan byte
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
