package growvec

import (
	"errors"
	"math"
	"math/bits"
	"unsafe"
)

// MaxAllocSize is the largest byte size a single block may have.
const MaxAllocSize = math.MaxInt

// ErrExhausted is returned by allocators that cannot satisfy a request.
var ErrExhausted = errors.New("allocator exhausted")

// ErrOverflow is returned by ArrayLayout when the byte size exceeds MaxAllocSize.
var ErrOverflow = errors.New("capacity overflow")

// Layout describes the byte size and alignment of a block.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// LayoutOf returns the layout of a single T.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{Size: unsafe.Sizeof(zero), Align: unsafe.Alignof(zero)}
}

// ArrayLayout returns the layout of n contiguous T values.
func ArrayLayout[T any](n int) (Layout, error) {
	elem := LayoutOf[T]()
	if n < 0 {
		return Layout{}, ErrOverflow
	}
	hi, lo := bits.Mul64(uint64(elem.Size), uint64(n))
	if hi != 0 || lo > MaxAllocSize {
		return Layout{}, ErrOverflow
	}
	return Layout{Size: uintptr(lo), Align: elem.Align}, nil
}

// Slots returns how many T fit in the layout.
func (l Layout) Slots(elemSize uintptr) int {
	if elemSize == 0 {
		return 0
	}
	return int(l.Size / elemSize)
}

// Allocator hands out typed blocks of element slots.
//
// A block returned by Allocate or Resize holds exactly Size/sizeof(T) slots.
// Resize preserves the contents of the old block up to the smaller of the two
// sizes and may relocate it; on failure the old block stays valid.
// Deallocate receives the layout the block was last obtained with and must
// not fail.
type Allocator[T any] interface {
	Allocate(layout Layout) ([]T, error)
	Resize(block []T, oldLayout, newLayout Layout) ([]T, error)
	Deallocate(block []T, layout Layout)
}

// Dropper is implemented by elements that release resources when they are
// dropped by a container.
type Dropper interface {
	Drop()
}

// Scalar is the set of pointer-free element types that may live in memory
// the Go garbage collector does not scan.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~complex64 | ~complex128 | ~bool
}
