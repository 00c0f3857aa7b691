package vec

import (
	"testing"

	"github.com/wippyai/growvec/alloc"
)

func TestSetLogger_Nil(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger is nil after SetLogger(nil)")
	}

	r := newRawVec[int](alloc.NewHeap[int]())
	r.grow()
	r.release()
}
