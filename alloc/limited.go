package alloc

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/growvec"
)

// Limited wraps an allocator with a byte budget shared by every block it
// hands out. Requests that would exceed the budget fail with an error
// wrapping growvec.ErrExhausted; a failed Resize leaves the old block valid.
type Limited[T any] struct {
	next  growvec.Allocator[T]
	limit uint64
	used  uint64
	mu    sync.Mutex
}

// NewLimited wraps next with a budget of limit bytes. A nil next means the
// Go heap.
func NewLimited[T any](next growvec.Allocator[T], limit uint64) *Limited[T] {
	if next == nil {
		next = NewHeap[T]()
	}
	return &Limited[T]{next: next, limit: limit}
}

// Allocate reserves layout.Size bytes of the budget and forwards.
func (l *Limited[T]) Allocate(layout growvec.Layout) ([]T, error) {
	if err := l.reserve(0, uint64(layout.Size)); err != nil {
		return nil, err
	}
	block, err := l.next.Allocate(layout)
	if err != nil {
		l.unreserve(uint64(layout.Size))
		return nil, err
	}
	return block, nil
}

// Resize reserves the size difference and forwards.
func (l *Limited[T]) Resize(block []T, oldLayout, newLayout growvec.Layout) ([]T, error) {
	if err := l.reserve(uint64(oldLayout.Size), uint64(newLayout.Size)); err != nil {
		return nil, err
	}
	out, err := l.next.Resize(block, oldLayout, newLayout)
	if err != nil {
		l.mu.Lock()
		l.used = l.used - uint64(newLayout.Size) + uint64(oldLayout.Size)
		l.mu.Unlock()
		return nil, err
	}
	return out, nil
}

// Deallocate returns layout.Size bytes to the budget and forwards.
func (l *Limited[T]) Deallocate(block []T, layout growvec.Layout) {
	l.unreserve(uint64(layout.Size))
	l.next.Deallocate(block, layout)
}

// Used returns the bytes currently reserved.
func (l *Limited[T]) Used() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used
}

// reserve swaps a reservation of from bytes for one of to bytes.
func (l *Limited[T]) reserve(from, to uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := l.used - from + to
	if to > from && next > l.limit {
		Logger().Debug("allocation over budget",
			zap.Uint64("used", l.used),
			zap.Uint64("requested", to),
			zap.Uint64("limit", l.limit))
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use", growvec.ErrExhausted, to, l.used, l.limit)
	}
	l.used = next
	return nil
}

func (l *Limited[T]) unreserve(n uint64) {
	l.mu.Lock()
	l.used -= n
	l.mu.Unlock()
}

var _ growvec.Allocator[int] = (*Limited[int])(nil)
