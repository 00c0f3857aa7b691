package alloc

import (
	"github.com/wippyai/growvec"
)

// Heap allocates blocks from the Go runtime.
type Heap[T any] struct{}

// NewHeap returns the Go heap allocator.
func NewHeap[T any]() *Heap[T] {
	return &Heap[T]{}
}

// Allocate returns a zeroed block of layout.Size/sizeof(T) slots.
func (*Heap[T]) Allocate(layout growvec.Layout) ([]T, error) {
	return make([]T, slots[T](layout)), nil
}

// Resize extends the block in place when its spare capacity allows and
// otherwise moves the contents to a new block, clearing the old one.
func (*Heap[T]) Resize(block []T, oldLayout, newLayout growvec.Layout) ([]T, error) {
	n := slots[T](newLayout)
	if n <= cap(block) {
		out := block[:n]
		if m := slots[T](oldLayout); m < n {
			clear(out[m:])
		}
		return out, nil
	}
	out := make([]T, n)
	copy(out, block[:slots[T](oldLayout)])
	clear(block)
	return out, nil
}

// Deallocate clears the block so the garbage collector retains nothing
// through it.
func (*Heap[T]) Deallocate(block []T, _ growvec.Layout) {
	clear(block)
}

func slots[T any](layout growvec.Layout) int {
	return layout.Slots(growvec.LayoutOf[T]().Size)
}

var _ growvec.Allocator[int] = (*Heap[int])(nil)
