package grid

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes placement failures.
type ErrorCode string

const (
	// ErrCodeOutOfRange indicates an index outside [0, N). Programming error.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"

	// ErrCodeDuplicate indicates a low-level PlaceAt of an item already held
	// at a different index.
	ErrCodeDuplicate ErrorCode = "DUPLICATE"

	// ErrCodeAlreadyPlaced indicates the duplicate guard rejected a drop
	// because the item is already somewhere on the grid.
	ErrCodeAlreadyPlaced ErrorCode = "ALREADY_PLACED"

	// ErrCodeGridFull indicates no empty slot remains.
	ErrCodeGridFull ErrorCode = "GRID_FULL"
)

// PlacementError reports why a grid mutation was refused.
// A refused mutation never changes any slot.
type PlacementError struct {
	Code ErrorCode

	// Index is the requested slot index.
	Index int

	// ItemID identifies the item being placed, if any.
	ItemID string

	// ExistingIndex is where the duplicate already lives (Duplicate only, else -1).
	ExistingIndex int
}

// Error implements the error interface.
func (e *PlacementError) Error() string {
	switch e.Code {
	case ErrCodeOutOfRange:
		return fmt.Sprintf("%s: slot %d does not exist", e.Code, e.Index)
	case ErrCodeDuplicate:
		return fmt.Sprintf("%s: %s already at slot %d", e.Code, e.ItemID, e.ExistingIndex)
	case ErrCodeAlreadyPlaced:
		return fmt.Sprintf("%s: %s is already on the home grid", e.Code, e.ItemID)
	case ErrCodeGridFull:
		return fmt.Sprintf("%s: no empty slot for %s", e.Code, e.ItemID)
	default:
		return fmt.Sprintf("%s: slot %d", e.Code, e.Index)
	}
}

func outOfRange(index int, id string) *PlacementError {
	return &PlacementError{Code: ErrCodeOutOfRange, Index: index, ItemID: id, ExistingIndex: -1}
}

// CodeOf returns the placement error code, or "" if err is not a *PlacementError.
func CodeOf(err error) ErrorCode {
	var pe *PlacementError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsOutOfRange reports whether err is an OUT_OF_RANGE placement error.
func IsOutOfRange(err error) bool { return CodeOf(err) == ErrCodeOutOfRange }

// IsDuplicate reports whether err is a DUPLICATE placement error.
func IsDuplicate(err error) bool { return CodeOf(err) == ErrCodeDuplicate }

// IsAlreadyPlaced reports whether err is an ALREADY_PLACED placement error.
func IsAlreadyPlaced(err error) bool { return CodeOf(err) == ErrCodeAlreadyPlaced }

// IsGridFull reports whether err is a GRID_FULL placement error.
func IsGridFull(err error) bool { return CodeOf(err) == ErrCodeGridFull }
