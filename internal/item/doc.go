// Package item defines the placeable launcher entry and the drawer catalog
// it is resolved from.
//
// An Item is an immutable value identified by its ID (typically an
// application package name). Equality is by ID only: two Items with the
// same ID and different labels or icons are the same entry.
//
// Identifiers and labels are NFC-normalized on construction so that
// visually identical identifiers from different sources compare equal.
//
// The Catalog is the drawer: an allowlisted, ordered, unlimited source of
// Items. Dragging from it never diminishes it.
package item
