// Package ring implements a fixed-capacity ring buffer that overwrites its
// oldest entry on push.
package ring

// Ring holds exactly Cap() values. It starts zero-filled, so it is always
// "full": a push replaces the oldest value.
type Ring[T any] struct {
	buf []T
	pos int
}

// New allocates a ring of the given capacity. Capacity below 1 is raised to 1.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push overwrites the oldest value with v.
func (r *Ring[T]) Push(v T) {
	r.buf[r.pos] = v
	r.pos++
	if r.pos == len(r.buf) {
		r.pos = 0
	}
}

// Cap returns the number of slots.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Cursor returns the slot the next Push writes to.
func (r *Ring[T]) Cursor() int {
	return r.pos
}

// Latest returns the most recently pushed value.
func (r *Ring[T]) Latest() T {
	i := r.pos - 1
	if i < 0 {
		i = len(r.buf) - 1
	}
	return r.buf[i]
}

// Each calls fn for every slot, oldest first.
func (r *Ring[T]) Each(fn func(T)) {
	for i := range r.buf {
		fn(r.buf[(r.pos+i)%len(r.buf)])
	}
}

// Snapshot copies the contents, oldest first, into dst.
// Destination-based: reuses dst if it has sufficient capacity, otherwise allocates.
func (r *Ring[T]) Snapshot(dst []T) []T {
	if cap(dst) >= len(r.buf) {
		dst = dst[:0]
	} else {
		dst = make([]T, 0, len(r.buf))
	}
	r.Each(func(v T) {
		dst = append(dst, v)
	})
	return dst
}

// Reset zero-fills the ring and rewinds the cursor.
func (r *Ring[T]) Reset() {
	clear(r.buf)
	r.pos = 0
}
