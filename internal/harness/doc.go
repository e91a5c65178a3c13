// Package harness runs gesture scenarios against the placement core.
//
// A scenario seeds a grid and a dock, replays a sequence of gesture events
// through a session.Loop, and checks per-step expectations, cross-container
// invariants and final assertions. Every run is deterministic: session ids
// come from testutil.SequentialGenerator("s") and trace seqs from
// testutil.DeterministicClock, so traces can be compared against golden
// files.
//
// # Scenario Format
//
//	name: drag_to_remove
//	description: "Removing an item empties its slot and the registry"
//	grid: 6            # slots, default 15
//	dock: 2            # capacity, default 4
//	setup:
//	  grid: {0: A}
//	  dock: [C]
//	steps:
//	  - start: {item: A, from: home, slot: 0}
//	  - enter: remove
//	  - drop: {zone: remove}
//	    expect: {accepted: true}
//	  - end: {accepted: true}
//	    expect: {restored: false}
//	  - move: C
//	    expect: {index: 0}
//	assertions:
//	  - type: final_grid
//	    slots: {0: C}
//	  - type: trace_count
//	    kind: drop
//	    count: 1
//
// # Assertion Types
//
//   - final_grid: occupied slots equal the given slot->id map exactly
//   - final_dock: dock entries equal the given ids, in order
//   - registry: registry ids equal the given set
//   - trace_contains: some trace line contains the given text
//   - trace_count: the trace holds exactly count events of kind
//   - journal_count: exactly count sessions were journaled
//
// Each run journals finished sessions and the final layout into a private
// in-memory store.
package harness
