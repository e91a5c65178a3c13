// Package grid implements the Home Grid: a fixed-size array of optional
// item slots together with the Registry that tracks which identifiers the
// grid currently holds.
//
// INVARIANTS:
//   - No two occupied slots hold items with the same ID.
//   - Registry contents always equal the set of IDs present in the slots.
//   - The Registry is mutated only by Grid mutation points; it exposes no
//     exported mutators.
//
// Every mutating operation is total: on valid input it succeeds, and on a
// rejected placement it returns a *PlacementError without touching any slot.
//
// Slot search policy (FindNextEmptySlot) scans forward from the requested
// index, inclusive, to the end of the grid, then backward from index-1 to 0.
// This biases placement toward slots after the drop point while still using
// the whole grid before reporting it full.
//
// Grid is not safe for concurrent use. It is owned by a single writer (the
// drag session coordinator, or the goroutine running its event loop).
package grid
