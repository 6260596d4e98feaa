package monitor

import (
	"context"
	"sync"
	"time"
)

// Serve runs the monitor on the host: one goroutine feeds bytes from in to
// HandleByte, one ticks the display every multiplexPeriod, and the calling
// goroutine is the foreground loop. It returns nil when in is closed and
// ctx.Err() when ctx is cancelled. A non-positive period disables the
// multiplex ticker.
func (m *Monitor) Serve(ctx context.Context, in <-chan byte, multiplexPeriod time.Duration) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	inputDone := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(inputDone)
		for {
			select {
			case <-runCtx.Done():
				return
			case b, ok := <-in:
				if !ok {
					return
				}
				m.HandleByte(b)
			}
		}
	}()

	if multiplexPeriod > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticker := time.NewTicker(multiplexPeriod)
			defer ticker.Stop()
			for {
				select {
				case <-runCtx.Done():
					return
				case <-ticker.C:
					m.HandleMultiplexTick()
				}
			}
		}()
	}

	var err error
loop:
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break loop
		case <-inputDone:
			break loop
		case <-m.wake:
			m.Poll()
		}
	}

	cancel()
	wg.Wait()
	// Consume whatever the handlers published last.
	m.Poll()
	return err
}
