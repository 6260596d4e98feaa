// Package frame assembles and validates the 32-byte PMSA003 serial frame.
//
// The receiver is a value type whose Next method is a pure transition:
// feed it one byte, get back the new receiver and, when a frame validated,
// the three particle readings. It is meant to be called from the serial
// receive interrupt, which owns the receiver exclusively.
package frame

const (
	// Length is the size of a sensor frame in bytes.
	Length = 32
	// StartMarker is the first byte of every frame.
	StartMarker = 0x42
	// SecondMarker is the second byte emitted by the sensor. It is not checked.
	SecondMarker = 0x4d

	payloadLength = Length - 2 // bytes covered by the checksum
	checksumHigh  = Length - 2
	checksumLow   = Length - 1

	// offsets of the atmospheric-environment readings
	offsetPM1_0 = 10
	offsetPM2_5 = 12
	offsetPM10  = 14
)

// Channel identifies one particle-size stream.
type Channel int

const (
	PM1_0 Channel = iota
	PM2_5
	PM10

	NumChannels = 3
)

func (c Channel) String() string {
	switch c {
	case PM1_0:
		return "PM1.0"
	case PM2_5:
		return "PM2.5"
	case PM10:
		return "PM10"
	default:
		return "unknown"
	}
}

// Readings holds one raw concentration per channel (ug/m3).
type Readings [NumChannels]uint16

// ChecksumMode selects how completed frames are validated.
type ChecksumMode int

const (
	// Strict accepts a frame only when the checksum matches.
	Strict ChecksumMode = iota
	// Lenient accepts every completed frame whatever its checksum. Meant for
	// bench comparison against older boards that never checked it.
	Lenient
)

func (m ChecksumMode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}

// Receiver is the frame assembly state.
type Receiver struct {
	buf  [Length]byte
	pos  int
	mode ChecksumMode
}

// NewReceiver returns an empty receiver using mode.
func NewReceiver(mode ChecksumMode) Receiver {
	return Receiver{mode: mode}
}

// Mode returns the checksum mode.
func (r Receiver) Mode() ChecksumMode {
	return r.mode
}

// Next consumes one byte. ok is true when b completed a frame that passed
// validation; readings is only meaningful then.
func (r Receiver) Next(b byte) (next Receiver, readings Readings, ok bool) {
	r.buf[r.pos] = b
	r.pos++
	full := r.pos == Length
	if r.pos >= Length {
		r.pos = 0
	}

	// Desynchronized: drop everything and wait for a start marker.
	if r.buf[0] != StartMarker {
		r.buf = [Length]byte{}
		r.pos = 0
		return r, Readings{}, false
	}

	// A zero trailing byte means "not a completed frame"; the cursor has
	// already wrapped and the next byte is checked against the marker.
	if !full || r.buf[checksumLow] == 0 {
		return r, Readings{}, false
	}

	if r.mode == Lenient || Checksum(r.buf[:payloadLength]) == be16(r.buf[checksumHigh:]) {
		readings = Readings{
			PM1_0: be16(r.buf[offsetPM1_0:]),
			PM2_5: be16(r.buf[offsetPM2_5:]),
			PM10:  be16(r.buf[offsetPM10:]),
		}
		ok = true
	}

	r.buf[0] = 0
	r.buf[checksumLow] = 0
	r.pos = 0
	return r, readings, ok
}

// Feed runs every byte of data through the receiver and calls fn for each
// validated frame.
func (r Receiver) Feed(data []byte, fn func(Readings)) Receiver {
	for _, b := range data {
		var readings Readings
		var ok bool
		r, readings, ok = r.Next(b)
		if ok && fn != nil {
			fn(readings)
		}
	}
	return r
}

// Checksum is the 16-bit sum of data.
func Checksum(data []byte) uint16 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return sum
}

func be16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}
