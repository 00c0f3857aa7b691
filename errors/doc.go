// Package errors provides structured error types for growvec.
//
// Errors are categorized by Phase (the operation that failed) and Kind
// (the error category). Fatal container conditions are raised as panics
// carrying an *Error so callers that do recover can inspect them:
//
//	defer func() {
//		if r := recover(); r != nil {
//			var e *errors.Error
//			if err, ok := r.(error); ok && stderrors.As(err, &e) && e.Kind == errors.KindOutOfBounds {
//				// caller bug
//			}
//		}
//	}()
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseGrow, errors.KindAllocation).
//		GoType("int64").
//		Detail("failed to allocate %d bytes", size).
//		Cause(allocErr).
//		Build()
//
// Or the convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseInsert, 7, 3)
//	err := errors.CapacityOverflow(errors.PhaseGrow, slots, elemSize)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
