package tracking

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrClosed     = errors.New("tracker closed")
	ErrLeaked     = errors.New("items never dropped")
	ErrDoubleDrop = errors.New("items dropped more than once")
	ErrDropFailed = errors.New("drop failed")
)

// Handle identifies an Item within its Tracker. The zero Handle is never
// issued.
type Handle uint32

// Tracker records the lifetime of every Item it creates. It is safe for
// concurrent use.
type Tracker struct {
	entries    []entry
	order      []int
	violations []Handle
	failOn     map[int]struct{}
	mu         sync.Mutex
	closed     bool
}

type entry struct {
	value int
	drops uint32
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		entries: make([]entry, 0, 64),
		failOn:  make(map[int]struct{}),
	}
}

// New creates a live Item holding value. It panics after Close.
func (t *Tracker) New(value int) Item {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		panic(ErrClosed)
	}
	t.entries = append(t.entries, entry{value: value})
	return Item{tracker: t, handle: Handle(len(t.entries)), Value: value}
}

// FailOn makes the Drop of any Item holding value panic with ErrDropFailed
// once the drop has been recorded.
func (t *Tracker) FailOn(value int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failOn[value] = struct{}{}
}

func (t *Tracker) drop(h Handle) {
	t.mu.Lock()
	idx := int(h) - 1
	if idx < 0 || idx >= len(t.entries) {
		t.mu.Unlock()
		return
	}
	e := &t.entries[idx]
	e.drops++
	if e.drops > 1 {
		t.violations = append(t.violations, h)
	}
	t.order = append(t.order, e.value)
	_, fail := t.failOn[e.value]
	t.mu.Unlock()

	if fail {
		panic(fmt.Errorf("%w: item %d", ErrDropFailed, e.value))
	}
}

// Created returns the number of Items handed out.
func (t *Tracker) Created() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Dropped returns the number of Items dropped at least once.
func (t *Tracker) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for _, e := range t.entries {
		if e.drops > 0 {
			count++
		}
	}
	return count
}

// Outstanding returns the number of Items not dropped yet.
func (t *Tracker) Outstanding() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for _, e := range t.entries {
		if e.drops == 0 {
			count++
		}
	}
	return count
}

// IsDropped reports whether the Item behind h has been dropped.
func (t *Tracker) IsDropped(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := int(h) - 1
	if idx < 0 || idx >= len(t.entries) {
		return false
	}
	return t.entries[idx].drops > 0
}

// DropOrder returns the values of every drop, in order. A double drop
// appears twice.
func (t *Tracker) DropOrder() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]int(nil), t.order...)
}

// Violations returns the handles that were dropped more than once, one
// entry per extra drop.
func (t *Tracker) Violations() []Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Handle(nil), t.violations...)
}

// Each iterates over the Items not dropped yet.
func (t *Tracker) Each(fn func(Handle, int) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, e := range t.entries {
		if e.drops == 0 {
			if !fn(Handle(i+1), e.value) {
				break
			}
		}
	}
}

// Close stops the tracker from creating Items and reports leaked and
// double-dropped Items. Closing twice returns nil.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	var leaked []int
	for _, e := range t.entries {
		if e.drops == 0 {
			leaked = append(leaked, e.value)
		}
	}

	var errs []error
	if len(leaked) > 0 {
		errs = append(errs, fmt.Errorf("%w: %d (values %v)", ErrLeaked, len(leaked), leaked))
	}
	if n := len(t.violations); n > 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrDoubleDrop, n))
	}
	return errors.Join(errs...)
}
