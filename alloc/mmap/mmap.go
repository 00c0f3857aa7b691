package mmap

import (
	"unsafe"

	"github.com/wippyai/growvec"
)

// Allocator hands out blocks backed by anonymous private mappings.
// It is stateless and safe for concurrent use.
type Allocator[T growvec.Scalar] struct{}

// New returns a mapping allocator for T.
func New[T growvec.Scalar]() *Allocator[T] {
	return &Allocator[T]{}
}

// bytesOf reinterprets a block as the byte slice of its mapping.
func bytesOf[T growvec.Scalar](block []T, layout growvec.Layout) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(block))), layout.Size)
}

// slotsOf reinterprets a mapping as a block of T.
func slotsOf[T growvec.Scalar](b []byte) []T {
	n := len(b) / int(unsafe.Sizeof(*new(T)))
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

var _ growvec.Allocator[int64] = (*Allocator[int64])(nil)
