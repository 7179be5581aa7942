// internal/runutil/ring.go — bounded trailing window
package runutil

// Ring is a fixed-capacity FIFO that keeps only the most recent Cap() items.
// Push is O(1); Do visits items oldest → newest.
type Ring[T any] struct {
	buf  []T
	head int // next write slot
	n    int
}

// NewRing returns a ring holding at most capacity items.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = DefaultWindow
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push appends v, evicting the oldest item when full.
func (r *Ring[T]) Push(v T) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
	if r.n < len(r.buf) {
		r.n++
	}
}

func (r *Ring[T]) Len() int { return r.n }
func (r *Ring[T]) Cap() int { return len(r.buf) }

// Do calls fn for each retained item, oldest first.
func (r *Ring[T]) Do(fn func(T)) {
	start := (r.head - r.n + len(r.buf)) % len(r.buf)
	for i := 0; i < r.n; i++ {
		fn(r.buf[(start+i)%len(r.buf)])
	}
}

// Slice copies the retained items, oldest first.
func (r *Ring[T]) Slice() []T {
	out := make([]T, 0, r.n)
	r.Do(func(v T) { out = append(out, v) })
	return out
}
