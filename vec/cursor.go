package vec

// cursor walks a contiguous slot region from both ends. It never owns the
// region: yielded slots are cleared and forgotten, the rest stay live until
// next, nextBack or dropRemaining takes them.
//
// 0 <= front <= back <= len(slots); front == back means exhausted.
type cursor[T any] struct {
	slots []T
	front int
	back  int
}

func newCursor[T any](slots []T) cursor[T] {
	return cursor[T]{slots: slots, back: len(slots)}
}

func (c *cursor[T]) next() (T, bool) {
	var zero T
	if c.front == c.back {
		return zero, false
	}
	v := c.slots[c.front]
	c.slots[c.front] = zero
	c.front++
	return v, true
}

func (c *cursor[T]) nextBack() (T, bool) {
	var zero T
	if c.front == c.back {
		return zero, false
	}
	c.back--
	v := c.slots[c.back]
	c.slots[c.back] = zero
	return v, true
}

func (c *cursor[T]) remaining() int {
	return c.back - c.front
}

// dropRemaining drops every slot still in [front, back) and leaves the
// cursor exhausted.
func (c *cursor[T]) dropRemaining(drop func(T)) {
	live := c.slots[c.front:c.back]
	c.front = c.back
	dropSlots(live, drop)
}

// dropSlots drops each slot exactly once, from index 0 upward, and clears it.
// If a destructor panics the remaining slots are still dropped before the
// panic continues.
func dropSlots[T any](slots []T, drop func(T)) {
	if drop == nil {
		clear(slots)
		return
	}
	i := 0
	defer func() {
		if i < len(slots) {
			dropSlots(slots[i+1:], drop)
		}
	}()
	var zero T
	for ; i < len(slots); i++ {
		v := slots[i]
		slots[i] = zero
		drop(v)
	}
}
