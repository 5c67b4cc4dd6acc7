package harness

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariantViolation means x0 was observed non-zero.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrStateMismatch means PC or register values diverged.
	ErrStateMismatch = errors.New("state mismatch")
	// ErrMemoryMismatch means the memory interface or memory contents diverged.
	ErrMemoryMismatch = errors.New("memory mismatch")
	// ErrEncodingMisuse means a generator produced a word outside its family.
	ErrEncodingMisuse = errors.New("encoding misuse")
)

// MismatchError is the fatal result of a run. Kind is one of the sentinel
// errors above and is what errors.Is matches against.
type MismatchError struct {
	Kind   error
	Record Record
	Detail string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %s at iteration %d (instr 0x%08x): %s",
		e.Record.Unit, e.Kind, e.Record.Iteration, e.Record.Stimulus.Instr, e.Detail)
}

func (e *MismatchError) Unwrap() error { return e.Kind }

func mismatch(kind error, format string, args ...any) *MismatchError {
	return &MismatchError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
