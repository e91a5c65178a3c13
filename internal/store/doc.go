// Package store provides SQLite-backed persistence for the launcher layout
// and an append-only journal of finished drag sessions.
//
// The store holds:
//   - Slots: one row per occupied home grid slot (idx, item)
//   - Dock entries: one row per dock position (pos, item)
//   - Layout meta: grid size, dock capacity and the last trace seq
//   - Sessions: one row per finished drag session, with its trace
//
// # Patterns
//
// Layout snapshots are replaced whole inside one transaction, so a reader
// never sees a grid from one save and a dock from another. The UNIQUE
// constraints on item_id mirror the in-memory invariants: no item twice
// on the grid, no item twice in the dock.
//
// Session ordering uses the seq INTEGER (logical clock), never timestamps.
// All journal queries order by seq ASC, id ASC COLLATE BINARY.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
