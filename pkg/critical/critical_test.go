package critical

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingSection struct {
	enters, exits int
}

func (c *countingSection) Enter() { c.enters++ }
func (c *countingSection) Exit()  { c.exits++ }

func TestDo_ReleasesOnReturn(t *testing.T) {
	s := &countingSection{}
	ran := false
	Do(s, func() { ran = true })

	assert.True(t, ran)
	assert.Equal(t, 1, s.enters)
	assert.Equal(t, 1, s.exits)
}

func TestDo_ReleasesOnPanic(t *testing.T) {
	s := &countingSection{}
	assert.Panics(t, func() {
		Do(s, func() { panic("boom") })
	})
	assert.Equal(t, 1, s.exits)
}

func TestMutex_Exclusive(t *testing.T) {
	var m Mutex
	counter := 0

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				Do(&m, func() {
					v := counter
					counter = v + 1
				})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8000, counter)
}
