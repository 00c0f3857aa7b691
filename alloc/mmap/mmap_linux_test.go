//go:build linux

package mmap

import (
	"os"
	"testing"

	"github.com/wippyai/growvec"
	"github.com/wippyai/growvec/alloc"
	"github.com/wippyai/growvec/vec"
)

func TestAllocator_GrowPreservesContents(t *testing.T) {
	a := New[uint32]()

	page := os.Getpagesize() / 4
	l1, _ := growvec.ArrayLayout[uint32](page)
	l2, _ := growvec.ArrayLayout[uint32](page * 4)

	b, err := a.Allocate(l1)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if len(b) != page {
		t.Fatalf("len = %d, want %d", len(b), page)
	}
	for i := range b {
		b[i] = uint32(i)
	}

	b, err = a.Resize(b, l1, l2)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if len(b) != page*4 {
		t.Fatalf("len = %d, want %d", len(b), page*4)
	}
	for i := 0; i < page; i++ {
		if b[i] != uint32(i) {
			t.Fatalf("b[%d] = %d after resize", i, b[i])
		}
	}
	for i := page; i < len(b); i++ {
		if b[i] != 0 {
			t.Fatalf("b[%d] = %d, want zero-filled growth", i, b[i])
		}
	}

	a.Deallocate(b, l2)
}

func TestAllocator_BacksVec(t *testing.T) {
	counting := alloc.NewCounting[int64](New[int64]())
	v := vec.NewWithOptions(vec.Options[int64]{Allocator: counting})

	const n = 100000
	for i := 0; i < n; i++ {
		v.Push(int64(i))
	}
	v.Insert(0, -1)
	if got := v.Remove(0); got != -1 {
		t.Fatalf("Remove(0) = %d, want -1", got)
	}
	for i, x := range v.Slice() {
		if x != int64(i) {
			t.Fatalf("v[%d] = %d", i, x)
		}
	}
	if v.Cap() != 131072 {
		t.Errorf("Cap = %d, want 131072", v.Cap())
	}

	v.Close()
	if counting.Outstanding() != 0 {
		t.Errorf("Outstanding = %d after Close", counting.Outstanding())
	}
}
