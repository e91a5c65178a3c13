// Package session implements the drag session coordinator: the state
// machine that drives one in-flight transfer between the home grid, the
// dock, the drawer and the remove zone.
//
// ARCHITECTURE:
//
// State machine:
//
//	IDLE --Start--> DRAGGING --DropAt(accepted)--> RESOLVING --End--> IDLE
//	                DRAGGING --DropAt(rejected)--> DRAGGING
//	                DRAGGING --End------------------------------> IDLE (rollback)
//
// Ordering discipline (the safety property of the whole subsystem):
//  1. Clear on start: a grid or dock origin is vacated when the drag begins,
//     so the item is never in two containers while it is in flight.
//  2. Mutate on accept: only the accepting zone handler writes the item to
//     its new home.
//  3. Restore on unaccepted end: if no zone accepted, the item goes back to
//     its exact slot or dock position. A drag released over nothing is
//     indistinguishable afterward from a drag that never happened.
//
// Accept is terminal: once a zone accepts, End never restores, whatever the
// caller reports.
//
// Single writer:
// The Coordinator is synchronous and never blocks. It is not safe for
// concurrent use. Gesture sources that deliver events on other goroutines
// must go through Loop, which marshals every event onto the one goroutine
// that owns the grid, the dock and the coordinator.
//
// Gesture contract (the caller's precondition):
//   - Start precedes every Enter, Exit and DropAt of a session.
//   - Exactly one End closes a session.
//   - No second Start before the previous End.
//
// Out-of-protocol calls are logged and ignored, returning a *ProtocolError.
// WithStrict turns them into panics for tests and debug builds.
package session
