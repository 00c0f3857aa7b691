package vec

import (
	"iter"

	"github.com/wippyai/growvec/errors"
)

// IntoIter is a single-pass iterator that owns the storage taken from a Vec.
// It yields the elements by value from either end. Elements not yielded
// before Close are dropped by Close.
type IntoIter[T any] struct {
	buf    rawVec[T]
	cur    cursor[T]
	drop   func(T)
	closed bool
}

// IntoIter converts the Vec into a consuming iterator. The storage moves into
// the iterator and the Vec can no longer be used; closing it is a no-op.
func (v *Vec[T]) IntoIter() *IntoIter[T] {
	v.check(errors.PhaseIterate)
	it := &IntoIter[T]{
		cur:  newCursor(v.buf.buf[:v.len]),
		drop: v.drop,
	}
	it.buf = v.buf.take()
	v.len = 0
	v.state = stateConsumed
	return it
}

// Next yields the front element. It reports false once exhausted.
func (it *IntoIter[T]) Next() (T, bool) {
	return it.cur.next()
}

// NextBack yields the back element. It reports false once exhausted.
func (it *IntoIter[T]) NextBack() (T, bool) {
	return it.cur.nextBack()
}

// Len returns the exact number of elements not yet yielded.
func (it *IntoIter[T]) Len() int {
	return it.cur.remaining()
}

// All yields the remaining elements front to back. Stopping early leaves the
// rest in the iterator.
func (it *IntoIter[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.cur.next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Backward yields the remaining elements back to front.
func (it *IntoIter[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.cur.nextBack()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Close drops the elements not yet yielded and releases the storage.
// It is safe to call more than once.
func (it *IntoIter[T]) Close() {
	if it.closed {
		return
	}
	it.closed = true
	defer it.buf.release()
	it.cur.dropRemaining(it.drop)
}
