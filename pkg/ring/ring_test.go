package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	r := New[uint16](4)
	assert.Equal(t, 4, r.Cap())
	assert.Equal(t, 0, r.Cursor())
	assert.Equal(t, []uint16{0, 0, 0, 0}, r.Snapshot(nil))

	assert.Equal(t, 1, New[int](0).Cap())
	assert.Equal(t, 1, New[int](-3).Cap())
}

func TestPush_Overwrites(t *testing.T) {
	r := New[int](3)

	tests := []struct {
		push   int
		want   []int
		cursor int
	}{
		{push: 1, want: []int{0, 0, 1}, cursor: 1},
		{push: 2, want: []int{0, 1, 2}, cursor: 2},
		{push: 3, want: []int{1, 2, 3}, cursor: 0},
		{push: 4, want: []int{2, 3, 4}, cursor: 1},
	}

	for _, tt := range tests {
		r.Push(tt.push)
		assert.Equal(t, tt.want, r.Snapshot(nil))
		assert.Equal(t, tt.cursor, r.Cursor())
		assert.Equal(t, tt.push, r.Latest())
	}
}

func TestSnapshot_ReusesDst(t *testing.T) {
	r := New[int](2)
	r.Push(5)

	dst := make([]int, 0, 8)
	got := r.Snapshot(dst)
	assert.Equal(t, []int{0, 5}, got)
	assert.Equal(t, 8, cap(got))

	small := make([]int, 0, 1)
	got = r.Snapshot(small)
	assert.Equal(t, []int{0, 5}, got)
}

func TestReset(t *testing.T) {
	r := New[int](2)
	r.Push(1)
	r.Push(2)
	r.Push(3)

	r.Reset()
	assert.Equal(t, 0, r.Cursor())
	assert.Equal(t, []int{0, 0}, r.Snapshot(nil))
}
