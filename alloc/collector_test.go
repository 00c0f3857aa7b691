package alloc

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	c := NewCounting[int64](nil)
	b, err := c.Allocate(layoutFor[int64](t, 2))
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}

	col := NewCollector(c, prometheus.Labels{"pool": "test"})

	if n := testutil.CollectAndCount(col); n != 8 {
		t.Errorf("CollectAndCount = %d, want 8", n)
	}

	expected := `
# HELP growvec_allocator_allocations_total Blocks obtained from the allocator.
# TYPE growvec_allocator_allocations_total counter
growvec_allocator_allocations_total{pool="test"} 1
# HELP growvec_allocator_live_bytes Bytes currently held by containers.
# TYPE growvec_allocator_live_bytes gauge
growvec_allocator_live_bytes{pool="test"} 16
`
	if err := testutil.CollectAndCompare(col, strings.NewReader(expected),
		"growvec_allocator_allocations_total", "growvec_allocator_live_bytes"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}

	c.Deallocate(b, layoutFor[int64](t, 2))

	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(col); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP growvec_allocator_live_bytes Bytes currently held by containers.
# TYPE growvec_allocator_live_bytes gauge
growvec_allocator_live_bytes{pool="test"} 0
`), "growvec_allocator_live_bytes"); err != nil {
		t.Errorf("unexpected metrics after free: %v", err)
	}
}
