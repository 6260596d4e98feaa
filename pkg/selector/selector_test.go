package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name  string
		from  State
		event Event
		want  State
		out   Output
	}{
		{name: "idle edge A", from: State{}, event: EdgeA, want: State{true, ButtonA}, out: Output{Arm: true}},
		{name: "idle edge B", from: State{}, event: EdgeB, want: State{true, ButtonB}, out: Output{Arm: true}},
		{name: "idle timeout", from: State{}, event: Timeout, want: State{}, out: Output{}},
		{name: "debouncing edge ignored", from: State{true, ButtonA}, event: EdgeB, want: State{true, ButtonA}, out: Output{}},
		{name: "debouncing same edge ignored", from: State{true, ButtonB}, event: EdgeB, want: State{true, ButtonB}, out: Output{}},
		{name: "debouncing timeout", from: State{true, ButtonB}, event: Timeout, want: State{}, out: Output{Pressed: true, Button: ButtonB}},
		{name: "unknown event", from: State{true, ButtonA}, event: Event(42), want: State{true, ButtonA}, out: Output{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, out := tt.from.Next(tt.event)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.out, out)
		})
	}
}

func TestSelector_SecondEdgeDropped(t *testing.T) {
	armed := 0
	s := New(TimerFunc(func() { armed++ }))

	s.Edge(ButtonA)
	s.Edge(ButtonB)
	s.Edge(ButtonA)
	assert.Equal(t, 1, armed)

	b, debouncing := s.State().Debouncing()
	assert.True(t, debouncing)
	assert.Equal(t, ButtonA, b)

	b, ok := s.Expire()
	assert.True(t, ok)
	assert.Equal(t, ButtonA, b)

	// Exactly one event per press.
	_, ok = s.Expire()
	assert.False(t, ok)
}

func TestSelector_RearmAfterExpire(t *testing.T) {
	armed := 0
	s := New(TimerFunc(func() { armed++ }))

	s.Edge(ButtonA)
	s.Expire()
	s.Edge(ButtonB)
	assert.Equal(t, 2, armed)

	b, ok := s.Expire()
	assert.True(t, ok)
	assert.Equal(t, ButtonB, b)
}

func TestSelector_NilTimer(t *testing.T) {
	s := New(nil)
	s.Edge(ButtonB)
	b, ok := s.Expire()
	assert.True(t, ok)
	assert.Equal(t, ButtonB, b)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "A", ButtonA.String())
	assert.Equal(t, "B", ButtonB.String())
	assert.Equal(t, EdgeA, EdgeOf(ButtonA))
	assert.Equal(t, EdgeB, EdgeOf(ButtonB))
}
