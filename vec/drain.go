package vec

import (
	"iter"

	"github.com/wippyai/growvec/errors"
)

// Drain removes every element from a Vec while keeping its storage.
//
// The Vec's length is zero from the moment the Drain is created, so the Vec
// never drops an element the Drain still holds. Until Close, the Vec is
// borrowed and may not be modified.
type Drain[T any] struct {
	vec    *Vec[T]
	cur    cursor[T]
	closed bool
}

// Drain borrows the Vec and returns an extractor over all its elements.
// The Vec is empty immediately and usable again, with its capacity, once
// the Drain is closed.
func (v *Vec[T]) Drain() *Drain[T] {
	v.check(errors.PhaseDrain)
	live := v.buf.buf[:v.len]
	v.len = 0
	v.state = stateDraining
	return &Drain[T]{
		vec: v,
		cur: newCursor(live),
	}
}

// Next yields the front element. It reports false once exhausted.
func (d *Drain[T]) Next() (T, bool) {
	return d.cur.next()
}

// NextBack yields the back element. It reports false once exhausted.
func (d *Drain[T]) NextBack() (T, bool) {
	return d.cur.nextBack()
}

// Len returns the exact number of elements not yet yielded.
func (d *Drain[T]) Len() int {
	return d.cur.remaining()
}

// All yields the remaining elements front to back.
func (d *Drain[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := d.cur.next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Backward yields the remaining elements back to front.
func (d *Drain[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := d.cur.nextBack()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Close drops the elements not yet yielded and returns the Vec to its owner.
// It is safe to call more than once.
func (d *Drain[T]) Close() {
	if d.closed {
		return
	}
	d.closed = true
	defer func() { d.vec.state = stateLive }()
	d.cur.dropRemaining(d.vec.drop)
}
