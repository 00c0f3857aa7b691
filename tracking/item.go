package tracking

import "github.com/wippyai/growvec"

// Item is a value whose drop is observed by the Tracker that created it.
// The zero Item belongs to no tracker and dropping it does nothing.
type Item struct {
	tracker *Tracker
	handle  Handle
	Value   int
}

// Handle returns the Item's handle in its tracker.
func (i Item) Handle() Handle {
	return i.handle
}

// Drop records the drop with the tracker.
func (i Item) Drop() {
	if i.tracker == nil {
		return
	}
	i.tracker.drop(i.handle)
}

var _ growvec.Dropper = Item{}
