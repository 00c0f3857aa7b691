//go:build linux

package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/wippyai/growvec"
	"github.com/wippyai/growvec/errors"
)

// Allocate maps layout.Size bytes of zeroed anonymous memory.
func (*Allocator[T]) Allocate(layout growvec.Layout) ([]T, error) {
	if err := checkAlign(layout); err != nil {
		return nil, err
	}
	b, err := unix.Mmap(-1, 0, int(layout.Size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %v", growvec.ErrExhausted, layout.Size, err)
	}
	return slotsOf[T](b), nil
}

// Resize remaps the block, letting the kernel move it when it cannot grow
// in place.
func (*Allocator[T]) Resize(block []T, oldLayout, newLayout growvec.Layout) ([]T, error) {
	if err := checkAlign(newLayout); err != nil {
		return nil, err
	}
	b, err := unix.Mremap(bytesOf(block, oldLayout), int(newLayout.Size), unix.MREMAP_MAYMOVE)
	if err != nil {
		return nil, fmt.Errorf("%w: mremap %d -> %d bytes: %v", growvec.ErrExhausted, oldLayout.Size, newLayout.Size, err)
	}
	return slotsOf[T](b), nil
}

// Deallocate unmaps the block. The layout must be the one the block was
// obtained with; anything else is a caller bug and panics.
func (*Allocator[T]) Deallocate(block []T, layout growvec.Layout) {
	if err := unix.Munmap(bytesOf(block, layout)); err != nil {
		panic(errors.Wrap(errors.PhaseRelease, errors.KindInvalidFree, err,
			fmt.Sprintf("munmap %d bytes", layout.Size)))
	}
}

func checkAlign(layout growvec.Layout) error {
	if layout.Align > uintptr(os.Getpagesize()) {
		return fmt.Errorf("mmap: alignment %d exceeds page size", layout.Align)
	}
	return nil
}
