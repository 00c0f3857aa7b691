package alloc

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/growvec"
	"github.com/wippyai/growvec/errors"
)

// Stats is a snapshot of allocator accounting.
//
// Allocs, Resizes and Failures count calls; TotalBytes counts bytes handed
// out by Allocate and by growing Resizes.
type Stats struct {
	Allocs     uint64
	Resizes    uint64
	Frees      uint64
	Failures   uint64
	TotalBytes uint64
	LiveBlocks int64
	LiveBytes  int64
	PeakBytes  int64
}

// StatsSource is implemented by allocators that keep accounting.
type StatsSource interface {
	Stats() Stats
}

// Counting wraps an allocator and records every block it hands out.
// Deallocating a block it does not know, or with a layout other than the one
// the block was obtained with, panics with errors.KindInvalidFree.
type Counting[T any] struct {
	next  growvec.Allocator[T]
	live  map[*T]growvec.Layout
	stats Stats
	mu    sync.Mutex
}

// NewCounting wraps next. A nil next means the Go heap.
func NewCounting[T any](next growvec.Allocator[T]) *Counting[T] {
	if next == nil {
		next = NewHeap[T]()
	}
	return &Counting[T]{
		next: next,
		live: make(map[*T]growvec.Layout),
	}
}

// Allocate forwards to the wrapped allocator and records the block.
func (c *Counting[T]) Allocate(layout growvec.Layout) ([]T, error) {
	block, err := c.next.Allocate(layout)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.stats.Failures++
		return nil, err
	}
	c.stats.Allocs++
	c.stats.TotalBytes += uint64(layout.Size)
	c.track(block, layout)
	return block, nil
}

// Resize forwards to the wrapped allocator and moves the record to the
// returned block.
func (c *Counting[T]) Resize(block []T, oldLayout, newLayout growvec.Layout) ([]T, error) {
	func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.verify(block, oldLayout)
	}()

	out, err := c.next.Resize(block, oldLayout, newLayout)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.stats.Failures++
		return nil, err
	}
	c.stats.Resizes++
	if newLayout.Size > oldLayout.Size {
		c.stats.TotalBytes += uint64(newLayout.Size - oldLayout.Size)
	}
	c.untrack(block, oldLayout)
	c.track(out, newLayout)
	return out, nil
}

// Deallocate validates the block and forwards to the wrapped allocator.
func (c *Counting[T]) Deallocate(block []T, layout growvec.Layout) {
	func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.verify(block, layout)
		c.untrack(block, layout)
		c.stats.Frees++
	}()

	c.next.Deallocate(block, layout)
}

// Stats returns a snapshot of the accounting.
func (c *Counting[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Outstanding returns the number of blocks handed out and not yet freed.
func (c *Counting[T]) Outstanding() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.live)
}

func (c *Counting[T]) track(block []T, layout growvec.Layout) {
	if len(block) == 0 {
		return
	}
	c.live[unsafe.SliceData(block)] = layout
	c.stats.LiveBlocks++
	c.stats.LiveBytes += int64(layout.Size)
	if c.stats.LiveBytes > c.stats.PeakBytes {
		c.stats.PeakBytes = c.stats.LiveBytes
	}
}

func (c *Counting[T]) untrack(block []T, layout growvec.Layout) {
	if len(block) == 0 {
		return
	}
	delete(c.live, unsafe.SliceData(block))
	c.stats.LiveBlocks--
	c.stats.LiveBytes -= int64(layout.Size)
}

// verify panics unless block is live with exactly layout. Must hold mu.
func (c *Counting[T]) verify(block []T, layout growvec.Layout) {
	if len(block) == 0 {
		panic(errors.InvalidFree("empty block"))
	}
	got, ok := c.live[unsafe.SliceData(block)]
	if !ok {
		Logger().Error("release of unknown block", zap.Uintptr("size", layout.Size))
		panic(errors.InvalidFree("block was not obtained from this allocator or is already freed"))
	}
	if got != layout {
		Logger().Error("release with mismatched layout",
			zap.Uintptr("size", layout.Size),
			zap.Uintptr("want_size", got.Size))
		panic(errors.New(errors.PhaseRelease, errors.KindInvalidFree).
			Detail("layout %d/%d does not match allocation %d/%d", layout.Size, layout.Align, got.Size, got.Align).
			Build())
	}
}

var (
	_ growvec.Allocator[int] = (*Counting[int])(nil)
	_ StatsSource            = (*Counting[int])(nil)
)
