package vec

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/growvec"
	"github.com/wippyai/growvec/errors"
)

// rawVec owns one allocator block and knows its capacity. It has no notion
// of which slots are occupied.
//
// cap == 0 means no block is held and buf is nil. cap > 0 means buf is a live
// block of exactly cap slots obtained from alloc.
type rawVec[T any] struct {
	alloc growvec.Allocator[T]
	buf   []T
	cap   int
}

func newRawVec[T any](alloc growvec.Allocator[T]) rawVec[T] {
	if growvec.LayoutOf[T]().Size == 0 {
		panic(errors.New(errors.PhaseAllocate, errors.KindUnsupported).
			GoType(typeName[T]()).
			Detail("zero-sized element types are not supported").
			Build())
	}
	return rawVec[T]{alloc: alloc}
}

// grow doubles the capacity, or allocates a single slot when empty.
// Any slice previously taken from buf is invalid afterwards.
func (r *rawVec[T]) grow() {
	newCap := 1
	if r.cap > 0 {
		newCap = r.cap * 2
		if newCap < r.cap {
			panic(errors.CapacityOverflow(errors.PhaseGrow, r.cap, growvec.LayoutOf[T]().Size))
		}
	}

	newLayout, err := growvec.ArrayLayout[T](newCap)
	if err != nil {
		panic(errors.CapacityOverflow(errors.PhaseGrow, newCap, growvec.LayoutOf[T]().Size))
	}

	var block []T
	if r.cap == 0 {
		block, err = r.alloc.Allocate(newLayout)
	} else {
		block, err = r.alloc.Resize(r.buf, r.layout(), newLayout)
	}
	if err != nil {
		if ce := Logger().Check(zap.DebugLevel, "storage growth failed"); ce != nil {
			ce.Write(zap.String("type", typeName[T]()), zap.Int("from", r.cap), zap.Int("to", newCap), zap.Error(err))
		}
		panic(errors.AllocationFailed(errors.PhaseGrow, newLayout.Size, newLayout.Align, err))
	}
	if len(block) != newCap {
		panic(errors.New(errors.PhaseGrow, errors.KindAllocation).
			GoType(typeName[T]()).
			Detail("allocator returned %d slots, want %d", len(block), newCap).
			Build())
	}

	if ce := Logger().Check(zap.DebugLevel, "storage grown"); ce != nil {
		ce.Write(zap.String("type", typeName[T]()), zap.Int("from", r.cap), zap.Int("to", newCap), zap.Uintptr("bytes", newLayout.Size))
	}

	r.buf = block[:newCap:newCap]
	r.cap = newCap
}

// layout returns the layout the current block was obtained with.
func (r *rawVec[T]) layout() growvec.Layout {
	l, err := growvec.ArrayLayout[T](r.cap)
	if err != nil {
		// cap was validated when the block was obtained
		panic(errors.CapacityOverflow(errors.PhaseRelease, r.cap, growvec.LayoutOf[T]().Size))
	}
	return l
}

// release hands the block back to the allocator. No-op when nothing is held.
func (r *rawVec[T]) release() {
	if r.cap == 0 {
		return
	}
	block, layout := r.buf, r.layout()
	r.buf = nil
	r.cap = 0
	r.alloc.Deallocate(block, layout)
}

// take moves the block out, leaving r empty.
func (r *rawVec[T]) take() rawVec[T] {
	out := *r
	r.buf = nil
	r.cap = 0
	return out
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
