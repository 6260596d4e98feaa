// Package critical provides the scoped critical section used by the monitor
// to guard state shared between interrupt handlers and the foreground loop.
//
// On the MCU a Section suppresses interrupts; on the host it is a mutex,
// because every "interrupt" is a goroutine there.
package critical

import "sync"

// Section is entered before touching shared state and exited afterwards.
type Section interface {
	Enter()
	Exit()
}

// Do runs fn inside s. The section is released even if fn panics.
func Do(s Section, fn func()) {
	s.Enter()
	defer s.Exit()
	fn()
}

// Mutex is the host Section.
type Mutex struct {
	mu sync.Mutex
}

// Enter locks the section.
func (m *Mutex) Enter() {
	m.mu.Lock()
}

// Exit unlocks the section.
func (m *Mutex) Exit() {
	m.mu.Unlock()
}

var _ Section = (*Mutex)(nil)
