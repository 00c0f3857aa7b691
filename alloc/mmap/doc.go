// Package mmap provides an allocator that places each block in its own
// anonymous memory mapping.
//
// Growth uses mremap with MREMAP_MAYMOVE, so the kernel extends a block in
// place when the following address range is free and moves the pages
// otherwise, without copying through user space.
//
// Mapped memory is not scanned by the Go garbage collector, so only
// pointer-free growvec.Scalar element types are accepted. Blocks are page
// granular; a one-slot vector still occupies a full page.
//
// Only Linux is supported. On other platforms every allocation fails with an
// errors.KindUnsupported error.
package mmap
