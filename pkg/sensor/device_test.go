package sensor

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	d := New("/dev/ttyUSB0", 115200, 256)

	assert.Equal(t, "/dev/ttyUSB0", d.port)
	assert.Equal(t, 115200, d.baudRate)
	assert.Equal(t, 256, d.bufSize)
	assert.Equal(t, 256, cap(d.bytes))
	assert.False(t, d.IsConnected())
}

func TestNew_Defaults(t *testing.T) {
	d := New("/dev/ttyUSB0", 0, 0)

	assert.Equal(t, DefaultBaudRate, d.baudRate)
	assert.Equal(t, DefaultBufferSize, d.bufSize)
}

func TestSerial_CloseWithoutConnect(t *testing.T) {
	d := New("/dev/ttyUSB0", 0, 0)
	assert.NoError(t, d.Close())
	assert.False(t, d.IsConnected())
}

func TestPump(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		cap   int
		want  []byte
	}{
		{
			name:  "copies all bytes",
			input: []byte{0x42, 0x4d, 0x00, 0x1c},
			cap:   16,
			want:  []byte{0x42, 0x4d, 0x00, 0x1c},
		},
		{
			name:  "drops overflow",
			input: []byte{1, 2, 3, 4, 5},
			cap:   3,
			want:  []byte{1, 2, 3},
		},
		{
			name:  "empty input",
			input: nil,
			cap:   4,
			want:  []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := make(chan byte, tt.cap)
			pump(context.Background(), bytes.NewReader(tt.input), out)
			close(out)

			got := []byte{}
			for b := range out {
				got = append(got, b)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPump_StopsOnCancel(t *testing.T) {
	r, w := io.Pipe()
	out := make(chan byte, 4)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		pump(ctx, r, out)
	}()

	_, err := w.Write([]byte{0x42})
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), <-out)

	cancel()
	// Closing the port is what unblocks a pending read.
	w.Close()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pump did not return after cancel")
	}
}
