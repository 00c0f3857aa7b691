package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which operation raised the error
type Phase string

const (
	PhaseAllocate Phase = "allocate" // storage creation
	PhaseGrow     Phase = "grow"     // capacity growth
	PhaseRelease  Phase = "release"  // storage release
	PhasePush     Phase = "push"
	PhasePop      Phase = "pop"
	PhaseInsert   Phase = "insert"
	PhaseRemove   Phase = "remove"
	PhaseIndex    Phase = "index"   // view access
	PhaseIterate  Phase = "iterate" // consuming iteration
	PhaseDrain    Phase = "drain"
	PhaseClose    Phase = "close"
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfBounds Kind = "out_of_bounds"
	KindOverflow    Kind = "overflow"
	KindAllocation  Kind = "allocation"
	KindUnsupported Kind = "unsupported"
	KindConsumed    Kind = "consumed"
	KindBorrowed    Kind = "borrowed"
	KindClosed      Kind = "closed"
	KindInvalidFree Kind = "invalid_free"
)

// Error is the structured error type used throughout growvec
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.GoType != "" {
		b.WriteString(" of ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// GoType sets the element type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// CapacityOverflow creates an error for a slot count whose byte size is not representable
func CapacityOverflow(phase Phase, slots int, elemSize uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("capacity overflow: %d slots of %d bytes", slots, elemSize),
		Value:  slots,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uintptr, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Consumed creates an error for use of a container whose storage was moved out
func Consumed(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindConsumed,
		Detail: "container was converted into an iterator",
	}
}

// Borrowed creates an error for use of a container while a drain is open
func Borrowed(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBorrowed,
		Detail: "container is borrowed by an open drain",
	}
}

// Closed creates an error for use of a container after Close
func Closed(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: "container is closed",
	}
}

// InvalidFree creates an error for a deallocation that does not match a live block
func InvalidFree(detail string) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindInvalidFree,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// FromPanic converts a recovered panic value into an error. Values that are
// not errors are wrapped with their printed form.
func FromPanic(r any) error {
	switch v := r.(type) {
	case nil:
		return nil
	case error:
		return v
	default:
		return fmt.Errorf("panic: %v", v)
	}
}
