// Package average keeps the rolling per-channel history of sensor readings.
package average

import (
	"github.com/itohio/pmmon/pkg/frame"
	"github.com/itohio/pmmon/pkg/ring"
)

const (
	// Depth is the number of readings averaged per channel.
	Depth = 4
	// MaxDisplay is the largest value the two-digit display can show.
	MaxDisplay = 99
)

// Store holds the last Depth readings of every channel and their averages.
// The rings start zero-filled, so the first Depth-1 averages lean towards zero.
type Store struct {
	history [frame.NumChannels]*ring.Ring[uint16]
	avg     [frame.NumChannels]uint16
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{}
	for ch := range s.history {
		s.history[ch] = ring.New[uint16](Depth)
	}
	return s
}

// Record pushes one validated frame and recomputes every channel average.
func (s *Store) Record(r frame.Readings) {
	for ch, h := range s.history {
		h.Push(r[ch])

		var sum uint32
		h.Each(func(v uint16) {
			sum += uint32(v)
		})
		s.avg[ch] = uint16(sum / uint32(h.Cap()))
	}
}

// Average returns the unclamped mean of ch. This is the value the
// threshold decision is made on.
func (s *Store) Average(ch frame.Channel) uint16 {
	return s.avg[ch]
}

// Averages returns all channel means.
func (s *Store) Averages() frame.Readings {
	return s.avg
}

// Display returns the mean of ch clamped to MaxDisplay.
func (s *Store) Display(ch frame.Channel) uint8 {
	return Clamp(s.avg[ch])
}

// History copies the readings of ch, oldest first, into dst.
func (s *Store) History(dst []uint16, ch frame.Channel) []uint16 {
	return s.history[ch].Snapshot(dst)
}

// Clamp limits v to the displayable range.
func Clamp(v uint16) uint8 {
	if v > MaxDisplay {
		return MaxDisplay
	}
	return uint8(v)
}
