// Package growvec provides a growable, contiguous sequence container that owns
// its storage and obtains it from a pluggable allocator.
//
// # Architecture Overview
//
//	growvec/          Root package with the Allocator contract and Layout
//	├── vec/          Storage, Vec, consuming iterator and drain
//	├── alloc/        Go heap, counting and budgeted allocators, metrics
//	│   ├── mmap/     Anonymous-mapping allocator (mmap/mremap/munmap)
//	│   └── linear/   Allocator backed by a WebAssembly linear memory
//	├── tracking/     Instrumented elements for leak and double-drop checks
//	├── errors/       Structured fatal-condition errors
//	└── cmd/vectrace  Script-driven trace tool
//
// # Quick Start
//
//	v := vec.New[string]()
//	defer v.Close()
//
//	v.Push("a")
//	v.Push("b")
//	v.Insert(0, "z")
//	fmt.Println(v.Slice()) // [z a b]
//
//	d := v.Drain()
//	for s := range d.All() {
//	    fmt.Println(s)
//	}
//	d.Close() // v is empty again, capacity kept
//
// # Ownership
//
// A Vec is owned by a single goroutine. Converting it with IntoIter moves its
// storage into the iterator; the Vec must not be used afterwards. A Drain
// borrows the Vec until the Drain is closed. Both rules are enforced at run
// time with fatal errors from the errors package.
//
// # Allocators
//
// Storage is requested through Allocator. The default is the Go heap; the
// alloc sub-packages add accounting, byte budgets, anonymous mappings and
// WebAssembly linear memory. Allocators that place elements outside the Go
// heap only accept pointer-free Scalar element types.
package growvec
