package alloc

import (
	"testing"

	"github.com/wippyai/growvec"
)

func layoutFor[T any](t *testing.T, n int) growvec.Layout {
	t.Helper()
	l, err := growvec.ArrayLayout[T](n)
	if err != nil {
		t.Fatalf("ArrayLayout(%d): %v", n, err)
	}
	return l
}

func TestHeap_AllocateResize(t *testing.T) {
	h := NewHeap[int64]()

	block, err := h.Allocate(layoutFor[int64](t, 4))
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if len(block) != 4 {
		t.Fatalf("len = %d, want 4", len(block))
	}
	for i := range block {
		block[i] = int64(i + 1)
	}

	grown, err := h.Resize(block, layoutFor[int64](t, 4), layoutFor[int64](t, 8))
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if len(grown) != 8 {
		t.Fatalf("len = %d, want 8", len(grown))
	}
	for i := 0; i < 4; i++ {
		if grown[i] != int64(i+1) {
			t.Errorf("grown[%d] = %d, want %d", i, grown[i], i+1)
		}
	}
	for i := 4; i < 8; i++ {
		if grown[i] != 0 {
			t.Errorf("grown[%d] = %d, want 0", i, grown[i])
		}
	}
	for i, v := range block {
		if v != 0 {
			t.Errorf("old block[%d] = %d, want cleared", i, v)
		}
	}

	h.Deallocate(grown, layoutFor[int64](t, 8))
	for i, v := range grown {
		if v != 0 {
			t.Errorf("freed block[%d] = %d, want cleared", i, v)
		}
	}
}

func TestHeap_ResizeInPlace(t *testing.T) {
	h := NewHeap[int32]()
	backing := make([]int32, 2, 8)
	backing[0], backing[1] = 7, 9

	out, err := h.Resize(backing, layoutFor[int32](t, 2), layoutFor[int32](t, 6))
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if &out[0] != &backing[0] {
		t.Error("expected resize within spare capacity to stay in place")
	}
	if out[0] != 7 || out[1] != 9 || len(out) != 6 {
		t.Errorf("out = %v", out)
	}
}
