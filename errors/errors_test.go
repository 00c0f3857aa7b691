package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseGrow,
				Kind:   KindAllocation,
				GoType: "int64",
				Detail: "failed to allocate 64 bytes",
			},
			contains: []string{"[grow]", "allocation", "of int64", "failed to allocate 64 bytes"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRemove,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[remove]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseGrow,
				Kind:   KindAllocation,
				Detail: "memory full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[grow]", "allocation", "memory full", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseGrow,
		Kind:  KindAllocation,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := OutOfBounds(PhaseInsert, 5, 2)

	if !err.Is(&Error{Phase: PhaseInsert, Kind: KindOutOfBounds}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseRemove, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseInsert, Kind: KindOverflow}) {
		t.Error("Is should not match different kind")
	}

	var target *Error
	if !errors.As(error(err), &target) || target.Value != 5 {
		t.Errorf("errors.As = %v, want Value 5", target)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseGrow, KindAllocation).
		GoType("string").
		Value(42).
		Cause(cause).
		Detail("wanted %d slots, got %d", 8, 4).
		Build()

	if err.Phase != PhaseGrow {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseGrow)
	}
	if err.Kind != KindAllocation {
		t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
	}
	if err.GoType != "string" {
		t.Errorf("GoType = %v, want 'string'", err.GoType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "wanted 8 slots, got 4" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"OutOfBounds", OutOfBounds(PhaseIndex, 3, 3), PhaseIndex, KindOutOfBounds},
		{"CapacityOverflow", CapacityOverflow(PhaseGrow, 1<<62, 8), PhaseGrow, KindOverflow},
		{"AllocationFailed", AllocationFailed(PhaseGrow, 16, 8, errors.New("oom")), PhaseGrow, KindAllocation},
		{"Unsupported", Unsupported(PhaseAllocate, "zero-sized element"), PhaseAllocate, KindUnsupported},
		{"Consumed", Consumed(PhasePush), PhasePush, KindConsumed},
		{"Borrowed", Borrowed(PhasePop), PhasePop, KindBorrowed},
		{"Closed", Closed(PhaseInsert), PhaseInsert, KindClosed},
		{"InvalidFree", InvalidFree("unknown block"), PhaseRelease, KindInvalidFree},
		{"Wrap", Wrap(PhaseDrain, KindAllocation, errors.New("x"), "wrapped"), PhaseDrain, KindAllocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestFromPanic(t *testing.T) {
	if FromPanic(nil) != nil {
		t.Error("nil panic should convert to nil")
	}

	e := Closed(PhaseClose)
	if got := FromPanic(e); got != error(e) {
		t.Errorf("FromPanic(error) = %v, want same error", got)
	}

	got := FromPanic("boom")
	if got == nil || !strings.Contains(got.Error(), "boom") {
		t.Errorf("FromPanic(string) = %v", got)
	}
}
