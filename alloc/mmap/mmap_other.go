//go:build !linux

package mmap

import (
	"github.com/wippyai/growvec"
	"github.com/wippyai/growvec/errors"
)

// Allocate is not supported on this platform.
func (*Allocator[T]) Allocate(growvec.Layout) ([]T, error) {
	return nil, errors.Unsupported(errors.PhaseAllocate, "anonymous mappings are only supported on linux")
}

// Resize is not supported on this platform.
func (*Allocator[T]) Resize([]T, growvec.Layout, growvec.Layout) ([]T, error) {
	return nil, errors.Unsupported(errors.PhaseGrow, "anonymous mappings are only supported on linux")
}

// Deallocate never receives a block on this platform.
func (*Allocator[T]) Deallocate([]T, growvec.Layout) {}
