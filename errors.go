package breadboard

import "github.com/pkg/errors"

// Mutation errors. Rejected mutations leave the board untouched; callers
// match with errors.Is. The evaluator never fails: unconnected slots,
// dangling wires and cycles all read as false instead.
//
var (
	// ErrInvalidReference reports a wire endpoint naming a nonexistent gate
	// or a slot index out of range for the destination's kind.
	ErrInvalidReference = errors.New("invalid gate reference")

	// ErrSlotOccupied reports an attempt to give an input slot a second
	// driver.
	ErrSlotOccupied = errors.New("input slot already driven")

	// ErrNotInput reports an attempt to set a stimulus value on a gate that
	// is not an Input gate.
	ErrNotInput = errors.New("not an input gate")
)
