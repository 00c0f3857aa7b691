// Package vec implements a growable contiguous sequence with explicit
// storage management.
//
// # Layers
//
//   - rawVec owns one allocator block and its capacity. It grows by doubling
//     (0 -> 1 -> 2 -> 4 ...) and releases the block with the layout it was
//     obtained with.
//   - Vec owns a rawVec plus the number of live slots and implements the
//     element operations: Push, Pop, Insert, Remove, views and Close.
//   - IntoIter and Drain pull elements out through a two-ended cursor.
//
// # Ownership rules
//
// Go has no destructors, so lifetimes end with Close:
//
//	v := vec.New[*os.File]()
//	defer v.Close() // drops every file still held
//
// Elements are dropped with Options.Drop, or their Drop method when they
// implement growvec.Dropper. Every element is dropped exactly once on every
// path: Close, IntoIter.Close after partial iteration, Drain.Close after
// partial extraction.
//
// IntoIter moves the storage out of the Vec. The Vec is consumed: using it
// panics, closing it does nothing.
//
//	it := v.IntoIter()
//	defer it.Close()
//	for f := range it.All() {
//	    ...
//	}
//
// Drain empties the Vec at once and borrows it until the Drain is closed.
// Mutating the Vec while the Drain is open panics.
//
//	d := v.Drain()
//	first, _ := d.Next()
//	d.Close()   // drops the rest
//	v.Push(x)   // reuses the old capacity
//
// # Fatal conditions
//
// Out-of-range indexes, capacity overflow, allocator failure and ownership
// violations panic with an *errors.Error. They are programming or resource
// errors and are not meant to be recovered from inside a caller's normal
// flow.
package vec
