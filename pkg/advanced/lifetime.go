package advanced

import "errors"

// ErrReleased is returned when an Owned value is read after Release.
var ErrReleased = errors.New("owned value already released")

// Frame is a fixed block of int slots handed out bump-style and rewound when
// the borrowing call returns, the way a call stack reuses memory. Go's escape
// analysis keeps `return &local` safe, so Frame is how the worksheet gets a
// pointer that outlives its storage.
type Frame struct {
	slots []int
	top   int
}

// NewFrame returns a frame with size slots.
func NewFrame(size int) *Frame {
	return &Frame{slots: make([]int, size)}
}

func (f *Frame) enter() int {
	return f.top
}

func (f *Frame) leave(mark int) {
	f.top = mark
}

func (f *Frame) alloc(v int) *int {
	if f.top >= len(f.slots) {
		f.top = 0
	}
	p := &f.slots[f.top]
	*p = v
	f.top++
	return p
}

// DanglingLocal returns the address of its local, which lives in f.
// BUG: the slot is handed back to f on return, so the next call through f
// overwrites whatever the caller reads via the returned pointer.
func DanglingLocal(f *Frame) *int {
	mark := f.enter()
	defer f.leave(mark)

	local := f.alloc(100)
	return local // BREAKPOINT: dangling-return watch=local,f.top
}

// Clobber is an unrelated call that stores v in a local of its own.
func Clobber(f *Frame, v int) int {
	mark := f.enter()
	defer f.leave(mark)

	scratch := f.alloc(v)
	return *scratch
}

// Owned is an exclusively-owned heap value with an explicit end of life.
type Owned[T any] struct {
	v *T
}

// NewOwned moves v into a new handle.
func NewOwned[T any](v T) *Owned[T] {
	return &Owned[T]{v: &v}
}

// NewOwnedBuffer allocates n ints holding 0..n-1.
func NewOwnedBuffer(n int) *Owned[[]int] {
	buf := make([]int, n)
	for i := range buf {
		buf[i] = i // BREAKPOINT: owned-buffer watch=i
	}
	return NewOwned(buf)
}

// Value returns the held value, or ErrReleased.
func (o *Owned[T]) Value() (T, error) {
	if o == nil || o.v == nil {
		var zero T
		return zero, ErrReleased
	}
	return *o.v, nil
}

// Release drops the value. Calling it more than once is a no-op.
func (o *Owned[T]) Release() {
	if o == nil {
		return
	}
	o.v = nil
}
