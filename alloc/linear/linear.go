package linear

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"unsafe"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/growvec"
	"github.com/wippyai/growvec/errors"
)

const (
	// heapBase keeps offset 0 out of circulation so no block starts at the
	// WebAssembly null address.
	heapBase = 8

	// maxPages keeps the memory size representable as a uint32 byte count.
	maxPages = 65535
)

// Config holds configuration for a linear memory allocator.
type Config struct {
	// MinPages is the initial memory size in 64KiB pages. 0 means 1.
	MinPages uint32

	// MaxPages is the hard memory limit in pages. 0 means 256 (16MiB).
	// The whole limit is reserved up front.
	MaxPages uint32
}

// DefaultConfig returns the default allocator configuration.
func DefaultConfig() Config {
	return Config{MinPages: 1, MaxPages: 256}
}

type span struct {
	off  uint64
	size uint64
}

// Allocator places blocks inside a WebAssembly linear memory.
type Allocator[T growvec.Scalar] struct {
	rt   wazero.Runtime
	mod  api.Module
	mem  api.Memory
	free []span
	top  uint64
	mu   sync.Mutex
}

// New instantiates a memory-only module and returns an allocator over its
// memory. A nil cfg means DefaultConfig.
func New[T growvec.Scalar](ctx context.Context, cfg *Config) (*Allocator[T], error) {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.MinPages > 0 {
			c.MinPages = cfg.MinPages
		}
		if cfg.MaxPages > 0 {
			c.MaxPages = cfg.MaxPages
		}
	}
	if c.MaxPages > maxPages {
		return nil, fmt.Errorf("linear: max pages %d exceeds %d", c.MaxPages, maxPages)
	}
	if c.MinPages > c.MaxPages {
		return nil, fmt.Errorf("linear: min pages %d exceeds max pages %d", c.MinPages, c.MaxPages)
	}

	runtimeCfg := wazero.NewRuntimeConfig().
		WithMemoryLimitPages(c.MaxPages).
		WithMemoryCapacityFromMax(true)
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	mod, err := rt.Instantiate(ctx, memoryModule(c.MinPages, c.MaxPages))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("linear: instantiate memory module: %w", err)
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("linear: module has no exported memory")
	}

	Logger().Debug("linear memory ready",
		zap.Uint32("min_pages", c.MinPages),
		zap.Uint32("max_pages", c.MaxPages))

	return &Allocator[T]{
		rt:  rt,
		mod: mod,
		mem: mem,
		top: heapBase,
	}, nil
}

// Close releases the WebAssembly runtime. Blocks still held by vectors
// become invalid.
func (a *Allocator[T]) Close(ctx context.Context) error {
	return a.rt.Close(ctx)
}

// Used returns the high-water offset of the heap in bytes.
func (a *Allocator[T]) Used() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.top
}

// Pages returns the current memory size in pages.
func (a *Allocator[T]) Pages() uint32 {
	return a.mem.Size() / PageSize
}

// Allocate carves a zeroed block from the free list or the top of the heap.
func (a *Allocator[T]) Allocate(layout growvec.Layout) ([]T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocate(layout)
}

// Resize extends the top block in place and moves any other block.
func (a *Allocator[T]) Resize(block []T, oldLayout, newLayout growvec.Layout) ([]T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	off, err := a.offsetOf(block)
	if err != nil {
		return nil, err
	}

	if off+uint64(oldLayout.Size) == a.top && off%uint64(newLayout.Align) == 0 {
		end := off + uint64(newLayout.Size)
		if err := a.ensure(end); err != nil {
			return nil, err
		}
		a.top = end
		out, err := a.view(off, uint64(newLayout.Size))
		if err != nil {
			return nil, err
		}
		if n := len(block); n < len(out) {
			clear(out[n:])
		}
		return out, nil
	}

	out, err := a.allocate(newLayout)
	if err != nil {
		return nil, err
	}
	copy(out, block)
	a.release(off, uint64(oldLayout.Size))
	return out, nil
}

// Deallocate returns the block's span to the free list.
func (a *Allocator[T]) Deallocate(block []T, layout growvec.Layout) {
	a.mu.Lock()
	defer a.mu.Unlock()

	off, err := a.offsetOf(block)
	if err != nil {
		panic(errors.Wrap(errors.PhaseRelease, errors.KindInvalidFree, err, "deallocate"))
	}
	a.release(off, uint64(layout.Size))
}

func (a *Allocator[T]) allocate(layout growvec.Layout) ([]T, error) {
	size, align := uint64(layout.Size), uint64(layout.Align)
	if align == 0 {
		align = 1
	}

	for i, s := range a.free {
		start := alignUp(s.off, align)
		if start+size > s.off+s.size {
			continue
		}
		var pieces []span
		if start > s.off {
			pieces = append(pieces, span{off: s.off, size: start - s.off})
		}
		if rest := s.off + s.size - (start + size); rest > 0 {
			pieces = append(pieces, span{off: start + size, size: rest})
		}
		a.free = slices.Replace(a.free, i, i+1, pieces...)
		return a.zeroed(start, size)
	}

	start := alignUp(a.top, align)
	end := start + size
	if err := a.ensure(end); err != nil {
		return nil, err
	}
	if start > a.top {
		a.release(a.top, start-a.top)
	}
	a.top = end
	return a.zeroed(start, size)
}

// release frees a span. The free list stays sorted by offset with no two
// spans touching, and a span reaching the top of the heap lowers the top.
func (a *Allocator[T]) release(off, size uint64) {
	i, _ := slices.BinarySearchFunc(a.free, off, func(s span, off uint64) int {
		return cmp.Compare(s.off, off)
	})
	merged := span{off: off, size: size}
	lo, hi := i, i
	if lo > 0 && a.free[lo-1].off+a.free[lo-1].size == off {
		lo--
		merged.off = a.free[lo].off
		merged.size += a.free[lo].size
	}
	if hi < len(a.free) && a.free[hi].off == off+size {
		merged.size += a.free[hi].size
		hi++
	}

	if merged.off+merged.size == a.top {
		a.top = merged.off
		a.free = slices.Delete(a.free, lo, hi)
		return
	}
	a.free = slices.Replace(a.free, lo, hi, merged)
}

// ensure grows the memory so that [0, end) is addressable.
func (a *Allocator[T]) ensure(end uint64) error {
	size := uint64(a.mem.Size())
	if end <= size {
		return nil
	}
	pages := (end - size + PageSize - 1) / PageSize
	if pages > maxPages {
		return fmt.Errorf("%w: %d bytes exceed linear memory", growvec.ErrExhausted, end)
	}
	prev, ok := a.mem.Grow(uint32(pages))
	if !ok {
		Logger().Debug("linear memory limit reached",
			zap.Uint64("requested_end", end),
			zap.Uint64("size", size))
		return fmt.Errorf("%w: linear memory limit reached at %d bytes", growvec.ErrExhausted, size)
	}
	Logger().Debug("linear memory grown",
		zap.Uint32("from_pages", prev),
		zap.Uint64("to_pages", uint64(prev)+pages))
	return nil
}

func (a *Allocator[T]) zeroed(off, size uint64) ([]T, error) {
	out, err := a.view(off, size)
	if err != nil {
		return nil, err
	}
	clear(out)
	return out, nil
}

// view returns the slots at [off, off+size) as a block aliasing the memory.
func (a *Allocator[T]) view(off, size uint64) ([]T, error) {
	b, ok := a.mem.Read(uint32(off), uint32(size))
	if !ok || len(b) == 0 {
		return nil, fmt.Errorf("linear: span %d+%d out of memory bounds", off, size)
	}
	n := len(b) / int(unsafe.Sizeof(*new(T)))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

// offsetOf locates a block inside the memory.
func (a *Allocator[T]) offsetOf(block []T) (uint64, error) {
	base, ok := a.mem.Read(0, a.mem.Size())
	if !ok || len(base) == 0 || len(block) == 0 {
		return 0, fmt.Errorf("linear: block is not part of this memory")
	}
	lo := uintptr(unsafe.Pointer(&base[0]))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(block)))
	if p < lo+heapBase || p >= lo+uintptr(len(base)) {
		return 0, fmt.Errorf("linear: block is not part of this memory")
	}
	return uint64(p - lo), nil
}

func alignUp(v, align uint64) uint64 {
	return (v + align - 1) &^ (align - 1)
}

var _ growvec.Allocator[int32] = (*Allocator[int32])(nil)
