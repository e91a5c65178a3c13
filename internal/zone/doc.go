// Package zone defines drop targets and their accept/reject policies.
//
// A drag carries a Payload built once at drag start: the item, where it came
// from (Origin) and, for grid origins, the slot it left. Each drop target is
// a Handler registered in a Table under a zone ID. The session coordinator
// looks the handler up and calls Accept; it never inspects zone-specific
// rules itself.
//
// Handlers perform their container mutation only when they accept. A
// rejection carries a Reason for user feedback and leaves every container
// untouched.
//
// Standard zones:
//
//	home    Home surface. Rejects grid origins; places at FindNextEmptySlot(0).
//	cell    A specific grid slot. PlaceWithDuplicateGuard(target).
//	dock    Appends to the dock.
//	remove  Accepts only grid origins; acceptance alone deletes the item.
package zone
