package vec

import (
	"github.com/wippyai/growvec"
	"github.com/wippyai/growvec/alloc"
)

// Options configures a Vec.
type Options[T any] struct {
	// Allocator provides the backing storage. Nil means the Go heap.
	Allocator growvec.Allocator[T]

	// Drop runs once for every element the container discards on Close,
	// on IntoIter.Close and on Drain.Close. Nil means elements implementing
	// growvec.Dropper have their Drop method called and others are cleared.
	Drop func(T)
}

// DefaultOptions returns the default Vec configuration.
func DefaultOptions[T any]() Options[T] {
	return Options[T]{
		Allocator: alloc.NewHeap[T](),
	}
}

// resolveDrop picks the destructor for T. Interface element types are
// checked per value since their dynamic type varies.
func resolveDrop[T any](drop func(T)) func(T) {
	if drop != nil {
		return drop
	}
	var zero T
	if any(zero) == nil {
		return func(v T) {
			if d, ok := any(v).(growvec.Dropper); ok {
				d.Drop()
			}
		}
	}
	if _, ok := any(zero).(growvec.Dropper); ok {
		return func(v T) {
			any(v).(growvec.Dropper).Drop()
		}
	}
	return nil
}
