package zone

import (
	"github.com/roach88/homeslot/internal/dock"
	"github.com/roach88/homeslot/internal/grid"
)

// Reason explains a rejection to the UI layer.
type Reason string

// Rejection reasons. ReasonNone accompanies acceptance.
const (
	ReasonNone        Reason = ""
	ReasonDuplicate   Reason = "DUPLICATE"
	ReasonFull        Reason = "FULL"
	ReasonWrongOrigin Reason = "WRONG_ORIGIN"
	ReasonOutOfRange  Reason = "OUT_OF_RANGE"
	ReasonNoHandler   Reason = "NO_HANDLER"
	ReasonInvalid     Reason = "INVALID"
)

// Decision is a handler's answer to a drop.
type Decision struct {
	Accepted bool
	Reason   Reason

	// Index is the grid slot the item landed in, or NoSlot.
	Index int

	// Err is the underlying container error for a rejection, if any.
	Err error
}

// Accept returns an accepting decision for a drop that landed at index.
func Accept(index int) Decision {
	return Decision{Accepted: true, Index: index}
}

// Reject returns a rejecting decision.
func Reject(reason Reason, err error) Decision {
	return Decision{Reason: reason, Index: NoSlot, Err: err}
}

// ReasonFor maps a grid or dock error onto a user-facing reason.
func ReasonFor(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case grid.IsAlreadyPlaced(err), grid.IsDuplicate(err), dock.IsAlreadyInDock(err):
		return ReasonDuplicate
	case grid.IsGridFull(err), dock.IsFull(err):
		return ReasonFull
	case grid.IsOutOfRange(err):
		return ReasonOutOfRange
	default:
		return ReasonInvalid
	}
}

// Message returns short user feedback for a rejection reason.
func (r Reason) Message() string {
	switch r {
	case ReasonDuplicate:
		return "already placed"
	case ReasonFull:
		return "no room"
	case ReasonWrongOrigin:
		return "cannot drop here"
	case ReasonOutOfRange:
		return "no such slot"
	case ReasonNoHandler:
		return "not a drop target"
	case ReasonInvalid:
		return "cannot place item"
	default:
		return ""
	}
}
