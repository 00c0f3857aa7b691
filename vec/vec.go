package vec

import (
	"iter"

	"github.com/wippyai/growvec/alloc"
	"github.com/wippyai/growvec/errors"
)

type state uint8

const (
	stateLive state = iota
	stateDraining
	stateConsumed
	stateClosed
)

// Vec is a growable contiguous sequence that owns its storage.
//
// Slots [0, Len()) hold live elements; the rest of the capacity is never
// exposed. A Vec is not safe for concurrent use.
type Vec[T any] struct {
	buf   rawVec[T]
	drop  func(T)
	len   int
	state state
}

// New creates an empty Vec backed by the Go heap. No storage is allocated
// until the first element is added.
func New[T any]() *Vec[T] {
	return NewWithOptions(DefaultOptions[T]())
}

// NewWithOptions creates an empty Vec with custom options.
func NewWithOptions[T any](opts Options[T]) *Vec[T] {
	a := opts.Allocator
	if a == nil {
		a = alloc.NewHeap[T]()
	}
	return &Vec[T]{
		buf:  newRawVec(a),
		drop: resolveDrop(opts.Drop),
	}
}

// From creates a heap-backed Vec holding a copy of values.
func From[T any](values ...T) *Vec[T] {
	v := New[T]()
	for _, x := range values {
		v.Push(x)
	}
	return v
}

// check panics unless the Vec may be used for the operation.
func (v *Vec[T]) check(phase errors.Phase) {
	switch v.state {
	case stateLive:
	case stateDraining:
		panic(errors.Borrowed(phase))
	case stateConsumed:
		panic(errors.Consumed(phase))
	default:
		panic(errors.Closed(phase))
	}
}

// Len returns the number of elements.
func (v *Vec[T]) Len() int {
	return v.len
}

// Cap returns the number of slots in the current allocation.
func (v *Vec[T]) Cap() int {
	return v.buf.cap
}

// Push appends value, growing the storage when it is full.
func (v *Vec[T]) Push(value T) {
	v.check(errors.PhasePush)
	if v.len == v.buf.cap {
		v.buf.grow()
	}
	v.buf.buf[v.len] = value
	v.len++
}

// Pop removes and returns the last element. It reports false when the Vec
// is empty.
func (v *Vec[T]) Pop() (T, bool) {
	v.check(errors.PhasePop)
	var zero T
	if v.len == 0 {
		return zero, false
	}
	v.len--
	value := v.buf.buf[v.len]
	v.buf.buf[v.len] = zero
	return value, true
}

// Insert places value at index, shifting later elements up by one.
// It panics unless 0 <= index <= Len().
func (v *Vec[T]) Insert(index int, value T) {
	v.check(errors.PhaseInsert)
	if index < 0 || index > v.len {
		panic(errors.OutOfBounds(errors.PhaseInsert, index, v.len))
	}
	if v.len == v.buf.cap {
		v.buf.grow()
	}
	s := v.buf.buf
	if index < v.len {
		copy(s[index+1:v.len+1], s[index:v.len])
	}
	s[index] = value
	v.len++
}

// Remove deletes and returns the element at index, shifting later elements
// down by one. It panics unless 0 <= index < Len().
func (v *Vec[T]) Remove(index int) T {
	v.check(errors.PhaseRemove)
	if index < 0 || index >= v.len {
		panic(errors.OutOfBounds(errors.PhaseRemove, index, v.len))
	}
	s := v.buf.buf
	value := s[index]
	copy(s[index:v.len-1], s[index+1:v.len])
	v.len--
	var zero T
	s[v.len] = zero
	return value
}

// At returns the element at index. It panics unless 0 <= index < Len().
func (v *Vec[T]) At(index int) T {
	v.check(errors.PhaseIndex)
	if index < 0 || index >= v.len {
		panic(errors.OutOfBounds(errors.PhaseIndex, index, v.len))
	}
	return v.buf.buf[index]
}

// Set replaces the element at index. The previous element is returned, not
// dropped. It panics unless 0 <= index < Len().
func (v *Vec[T]) Set(index int, value T) T {
	v.check(errors.PhaseIndex)
	if index < 0 || index >= v.len {
		panic(errors.OutOfBounds(errors.PhaseIndex, index, v.len))
	}
	old := v.buf.buf[index]
	v.buf.buf[index] = value
	return old
}

// Slice returns a mutable view of the live elements. The view's capacity is
// limited to Len(), so appending to it never writes into the Vec. Elements
// overwritten through the view are not dropped. It is invalidated by any
// operation that changes Len() or Cap().
func (v *Vec[T]) Slice() []T {
	v.check(errors.PhaseIndex)
	return v.buf.buf[:v.len:v.len]
}

// All returns an iterator over index/element pairs, front to back.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(i, v.At(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements, front to back.
func (v *Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(v.At(i)) {
				return
			}
		}
	}
}

// Close drops every element exactly once, front to back, and releases the
// storage. Closing a closed or consumed Vec is a no-op. Close panics while a
// Drain is open.
func (v *Vec[T]) Close() {
	switch v.state {
	case stateClosed, stateConsumed:
		return
	case stateDraining:
		panic(errors.Borrowed(errors.PhaseClose))
	}
	live := v.buf.buf[:v.len]
	v.len = 0
	v.state = stateClosed
	defer v.buf.release()
	dropSlots(live, v.drop)
}
