package hw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveLow(t *testing.T) {
	rec := NewRecorder()
	line := ActiveLow(rec.Line("sel"))

	line.Set(true)
	assert.False(t, rec.Level("sel"))

	line.Set(false)
	assert.True(t, rec.Level("sel"))
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	a := rec.Line("a")
	b := rec.Line("b")

	a.Set(true)
	b.Set(false)
	a.Set(false)

	assert.Equal(t, []Change{
		{Name: "a", Level: true},
		{Name: "b", Level: false},
		{Name: "a", Level: false},
	}, rec.Changes())
	assert.False(t, rec.Level("a"))

	rec.Reset()
	assert.Empty(t, rec.Changes())
	assert.False(t, rec.Level("unknown"))
}
