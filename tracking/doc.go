// Package tracking provides an instrumented element type for checking
// ownership rules of containers.
//
// A Tracker hands out Items. Every Item carries a handle into the tracker's
// table, and Item.Drop marks that entry dropped. Dropping an Item twice is
// recorded as a violation instead of panicking, so a test can inspect the
// whole history after the fact:
//
//	tr := tracking.NewTracker()
//	v := vec.New[tracking.Item]()
//	for i := range 10 {
//	    v.Push(tr.New(i))
//	}
//	v.Close()
//
//	if err := tr.Close(); err != nil {
//	    t.Fatal(err) // leaked or double-dropped items
//	}
//
// # Drop Order
//
// DropOrder returns the values of dropped Items in the order they were
// dropped, which lets tests assert front-to-back destruction.
//
// # Failing Destructors
//
// FailOn makes the Drop of one value panic after it has been recorded. This
// exercises the guarantee that a container keeps dropping the remaining
// elements when one destructor panics.
package tracking
