package growvec

import (
	"errors"
	"math"
	"testing"
)

func TestLayoutOf(t *testing.T) {
	tests := []struct {
		name string
		got  Layout
		want Layout
	}{
		{"byte", LayoutOf[byte](), Layout{Size: 1, Align: 1}},
		{"uint32", LayoutOf[uint32](), Layout{Size: 4, Align: 4}},
		{"pair", LayoutOf[struct{ a, b uint16 }](), Layout{Size: 4, Align: 2}},
		{"empty", LayoutOf[struct{}](), Layout{Size: 0, Align: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("LayoutOf = %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func TestArrayLayout(t *testing.T) {
	l, err := ArrayLayout[uint64](16)
	if err != nil {
		t.Fatalf("ArrayLayout: %v", err)
	}
	if l.Size != 128 || l.Align != 8 {
		t.Errorf("layout = %+v", l)
	}
	if n := l.Slots(8); n != 16 {
		t.Errorf("Slots = %d, want 16", n)
	}
	if n := l.Slots(0); n != 0 {
		t.Errorf("Slots(0) = %d, want 0", n)
	}

	if _, err := ArrayLayout[byte](math.MaxInt); err != nil {
		t.Errorf("MaxInt bytes should fit: %v", err)
	}

	tests := []struct {
		name string
		n    int
	}{
		{"negative", -1},
		{"past max", math.MaxInt/8 + 1},
		{"max slots", math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ArrayLayout[uint64](tt.n); !errors.Is(err, ErrOverflow) {
				t.Errorf("ArrayLayout(%d) = %v, want ErrOverflow", tt.n, err)
			}
		})
	}
}
