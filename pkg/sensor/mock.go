package sensor

import (
	"context"
	"sync"
	"time"

	"github.com/itohio/pmmon/pkg/config"
	"github.com/itohio/pmmon/pkg/frame"
	log "github.com/sirupsen/logrus"
)

// driftPeriod is the number of frames in one full rise-and-fall of the
// synthetic drift.
const driftPeriod = 16

// Mock is a fake sensor that emits well-formed frames at a fixed period.
// Readings ramp up and down around the configured base values so the
// safe/unsafe indicator changes over time.
type Mock struct {
	cfg config.MockConfig

	bytes     chan byte
	mu        sync.RWMutex
	cancel    context.CancelFunc
	done      chan struct{}
	connected bool
}

// NewMock creates a new mock sensor with a copy of the given configuration.
// Later edits to cfg apply only to mocks created after them.
func NewMock(cfg *config.MockConfig) *Mock {
	return &Mock{
		cfg:   *cfg,
		bytes: make(chan byte, DefaultBufferSize),
	}
}

// Connect starts generating frames.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return ErrAlreadyConnected
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	m.bytes = make(chan byte, DefaultBufferSize)
	m.connected = true

	go func(out chan byte, done chan struct{}) {
		defer close(done)
		defer close(out)
		m.generate(ctx, out)
	}(m.bytes, m.done)

	log.Infof("Mock sensor started: period=%v base=%d/%d/%d drift=%d",
		m.cfg.FramePeriod, m.cfg.PM1_0, m.cfg.PM2_5, m.cfg.PM10, m.cfg.Drift)

	return nil
}

// Close stops frame generation. The bytes channel is closed once the
// generator has exited.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	<-m.done
	m.connected = false

	return nil
}

// Bytes returns the channel for reading the synthetic stream.
func (m *Mock) Bytes() <-chan byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bytes
}

// IsConnected returns whether the mock is currently generating frames.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

func (m *Mock) generate(ctx context.Context, out chan<- byte) {
	period := m.cfg.FramePeriod
	if period <= 0 {
		period = time.Second
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for seq := 0; ; seq++ {
		buf := m.frameAt(seq)
		for _, b := range buf {
			select {
			case out <- b:
			case <-ctx.Done():
				return
			}
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

// frameAt returns the encoded frame number seq, corrupted when it falls
// on the configured corruption interval.
func (m *Mock) frameAt(seq int) [frame.Length]byte {
	buf := frame.Encode(m.readingsAt(seq))
	if n := m.cfg.CorruptEvery; n > 0 && (seq+1)%n == 0 {
		buf[frame.Length-1] ^= 0x02
	}
	return buf
}

// readingsAt returns base + drift*tri/half, where tri is a triangle wave
// over driftPeriod frames.
func (m *Mock) readingsAt(seq int) frame.Readings {
	const half = driftPeriod / 2

	phase := seq % driftPeriod
	tri := phase
	if phase > half {
		tri = driftPeriod - phase
	}
	offset := uint16(int(m.cfg.Drift) * tri / half)

	return frame.Readings{
		m.cfg.PM1_0 + offset,
		m.cfg.PM2_5 + offset,
		m.cfg.PM10 + offset,
	}
}
