package session

import (
	"errors"
	"fmt"
)

// ErrNotInDock is returned by MoveDockToGrid when the dock has no such entry.
var ErrNotInDock = errors.New("item is not in the dock")

// ProtocolErrorCode categorizes gesture contract violations.
type ProtocolErrorCode string

const (
	// ErrCodeSessionActive indicates Start while a session is live.
	ErrCodeSessionActive ProtocolErrorCode = "SESSION_ACTIVE"

	// ErrCodeNoSession indicates Enter, Exit, DropAt or End with no live session.
	ErrCodeNoSession ProtocolErrorCode = "NO_SESSION"

	// ErrCodeAlreadyResolved indicates DropAt after a zone already accepted.
	ErrCodeAlreadyResolved ProtocolErrorCode = "ALREADY_RESOLVED"

	// ErrCodeBadOrigin indicates a Start whose origin does not hold the item.
	ErrCodeBadOrigin ProtocolErrorCode = "BAD_ORIGIN"
)

// ProtocolError reports a call that violates the gesture contract.
// The call has no effect.
type ProtocolError struct {
	Code      ProtocolErrorCode
	Op        string
	SessionID string
	Message   string
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("%s: %s: %s (session=%s)", e.Code, e.Op, e.Message, e.SessionID)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
}

// IsProtocolError reports whether err is a *ProtocolError with the given code.
// An empty code matches any protocol error.
func IsProtocolError(err error, code ProtocolErrorCode) bool {
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		return false
	}
	return code == "" || pe.Code == code
}
