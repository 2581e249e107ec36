package rapass

import (
	"fmt"

	"github.com/xyproto/midforge/ir"
)

// Status is the core's error-code type. It satisfies the standard error
// interface so pass failures compose with errors.Is/errors.As rather
// than requiring a parallel status-comparison idiom.
type Status int

const (
	StatusOk Status = iota
	StatusNoHeapMemory
	StatusInvalidArch
	StatusInvalidInstruction
	StatusInvalidVirtID
	StatusInvalidState
	StatusOverlappedRegs
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "Ok"
	case StatusNoHeapMemory:
		return "NoHeapMemory"
	case StatusInvalidArch:
		return "InvalidArch"
	case StatusInvalidInstruction:
		return "InvalidInstruction"
	case StatusInvalidVirtID:
		return "InvalidVirtID"
	case StatusInvalidState:
		return "InvalidState"
	case StatusOverlappedRegs:
		return "OverlappedRegs"
	default:
		return "Status?"
	}
}

func (s Status) Error() string { return "rapass: " + s.String() }

// Sentinel errors surfaced at the package boundary, per the error taxonomy:
// programmatic (InvalidState, InvalidInstruction, InvalidVirtID,
// OverlappedRegs, InvalidArch) and resource (NoHeapMemory).
var (
	ErrNoHeapMemory        error = StatusNoHeapMemory
	ErrInvalidArch         error = StatusInvalidArch
	ErrInvalidInstruction  error = StatusInvalidInstruction
	ErrInvalidVirtID       error = StatusInvalidVirtID
	ErrInvalidState        error = StatusInvalidState
	ErrOverlappedRegs      error = StatusOverlappedRegs
)

// PassError attaches a node and a human-readable detail to a Status,
// mirroring the location-plus-category shape of a diagnostic error
// without pulling in source-text/suggestion fields that belong to the
// (out of scope) front end.
type PassError struct {
	Status Status
	Node   *ir.Node
	Detail string
}

func (e *PassError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("rapass: %s at node #%d (%s): %s", e.Status, e.Node.Position, e.Node.Type, e.Detail)
	}
	return fmt.Sprintf("rapass: %s: %s", e.Status, e.Detail)
}

func (e *PassError) Unwrap() error { return e.Status }

func wrap(status Status, node *ir.Node, detail string) error {
	return &PassError{Status: status, Node: node, Detail: detail}
}
