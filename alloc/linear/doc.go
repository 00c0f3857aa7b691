// Package linear provides an allocator that places blocks inside the linear
// memory of a WebAssembly module instance.
//
// The module is generated on the fly: it declares one exported memory with a
// fixed page limit and nothing else. wazero is configured to reserve the full
// limit up front, so growing the memory never moves it and block views stay
// valid for the lifetime of the allocator.
//
// Blocks are carved with a first-fit free list over a bump pointer. Resizing
// the block at the top of the heap extends it in place; other blocks move.
// When the page limit is reached, requests fail with growvec.ErrExhausted.
//
//	a, err := linear.New[int32](ctx, &linear.Config{MaxPages: 16})
//	if err != nil {
//	    return err
//	}
//	defer a.Close(ctx)
//
//	v := vec.NewWithOptions(vec.Options[int32]{Allocator: a})
//	defer v.Close()
//
// The allocator must outlive every vector that uses it. It is safe for
// concurrent use. Only pointer-free growvec.Scalar element types are
// accepted, since linear memory is not scanned by the garbage collector.
package linear
