package alloc

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/wippyai/growvec"
	"github.com/wippyai/growvec/errors"
)

type failingAllocator[T any] struct {
	err error
}

func (f failingAllocator[T]) Allocate(growvec.Layout) ([]T, error) { return nil, f.err }
func (f failingAllocator[T]) Resize([]T, growvec.Layout, growvec.Layout) ([]T, error) {
	return nil, f.err
}
func (f failingAllocator[T]) Deallocate([]T, growvec.Layout) {}

func expectPanicKind(t *testing.T, kind errors.Kind, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic of kind %s", kind)
		}
		var e *errors.Error
		if err, ok := r.(error); !ok || !stderrors.As(err, &e) || e.Kind != kind {
			t.Fatalf("panic = %v, want kind %s", r, kind)
		}
	}()
	fn()
}

func TestCounting_Lifecycle(t *testing.T) {
	c := NewCounting[uint64](nil)

	l1 := layoutFor[uint64](t, 1)
	l2 := layoutFor[uint64](t, 2)
	l4 := layoutFor[uint64](t, 4)

	b, err := c.Allocate(l1)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if b, err = c.Resize(b, l1, l2); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if b, err = c.Resize(b, l2, l4); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	s := c.Stats()
	if s.Allocs != 1 || s.Resizes != 2 {
		t.Errorf("Allocs=%d Resizes=%d, want 1 and 2", s.Allocs, s.Resizes)
	}
	if s.LiveBlocks != 1 || s.LiveBytes != 32 {
		t.Errorf("LiveBlocks=%d LiveBytes=%d, want 1 and 32", s.LiveBlocks, s.LiveBytes)
	}
	if s.TotalBytes != 32 {
		t.Errorf("TotalBytes = %d, want 32", s.TotalBytes)
	}
	if c.Outstanding() != 1 {
		t.Errorf("Outstanding = %d, want 1", c.Outstanding())
	}

	c.Deallocate(b, l4)
	s = c.Stats()
	if s.Frees != 1 || s.LiveBlocks != 0 || s.LiveBytes != 0 {
		t.Errorf("after free: %+v", s)
	}
	if s.PeakBytes != 32 {
		t.Errorf("PeakBytes = %d, want 32", s.PeakBytes)
	}
	if c.Outstanding() != 0 {
		t.Errorf("Outstanding = %d, want 0", c.Outstanding())
	}
}

func TestCounting_InvalidFree(t *testing.T) {
	t.Run("double free", func(t *testing.T) {
		c := NewCounting[int](nil)
		l := layoutFor[int](t, 2)
		b, _ := c.Allocate(l)
		c.Deallocate(b, l)
		expectPanicKind(t, errors.KindInvalidFree, func() { c.Deallocate(b, l) })
	})

	t.Run("wrong layout", func(t *testing.T) {
		c := NewCounting[int](nil)
		b, _ := c.Allocate(layoutFor[int](t, 2))
		expectPanicKind(t, errors.KindInvalidFree, func() { c.Deallocate(b, layoutFor[int](t, 4)) })
	})

	t.Run("foreign block", func(t *testing.T) {
		c := NewCounting[int](nil)
		expectPanicKind(t, errors.KindInvalidFree, func() { c.Deallocate(make([]int, 2), layoutFor[int](t, 2)) })
	})

	t.Run("usable after recovered panic", func(t *testing.T) {
		c := NewCounting[int](nil)
		l := layoutFor[int](t, 2)
		b, _ := c.Allocate(l)
		c.Deallocate(b, l)
		expectPanicKind(t, errors.KindInvalidFree, func() { c.Deallocate(b, l) })
		expectPanicKind(t, errors.KindInvalidFree, func() { _, _ = c.Resize(b, l, layoutFor[int](t, 4)) })

		done := make(chan Stats, 1)
		go func() {
			b2, err := c.Allocate(l)
			if err == nil {
				c.Deallocate(b2, l)
			}
			done <- c.Stats()
		}()
		select {
		case s := <-done:
			if s.Allocs != 2 || s.Frees != 2 || s.LiveBlocks != 0 {
				t.Errorf("stats = %+v", s)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("allocator lock still held after a recovered invalid free")
		}
	})
}

func TestCounting_Failures(t *testing.T) {
	boom := stderrors.New("boom")
	c := NewCounting[int](failingAllocator[int]{err: boom})

	if _, err := c.Allocate(layoutFor[int](t, 1)); !stderrors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if s := c.Stats(); s.Failures != 1 || s.Allocs != 0 {
		t.Errorf("stats = %+v", s)
	}
}
