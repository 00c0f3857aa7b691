// Package alloc provides growvec.Allocator implementations and wrappers.
//
//   - Heap: blocks from the Go runtime. Resize reuses spare capacity in place
//     and otherwise relocates.
//   - Counting: wraps another allocator, tracks every live block and
//     validates each Deallocate against the layout it handed out.
//   - Limited: wraps another allocator with a byte budget; requests beyond it
//     fail with growvec.ErrExhausted.
//   - Collector: exports Counting statistics to Prometheus.
//
// Wrappers are safe for concurrent use so one instance can back many
// vectors. Heap is stateless.
//
// See the mmap and linear sub-packages for allocators that place elements
// outside the Go heap.
package alloc
