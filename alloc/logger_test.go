package alloc

import "testing"

func TestSetLogger_Nil(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger is nil after SetLogger(nil)")
	}

	l := NewLimited[int](nil, 8)
	if _, err := l.Allocate(layoutFor[int](t, 4)); err == nil {
		t.Fatal("expected budget error")
	}
}
