package session

import (
	"fmt"
	"strings"

	"github.com/roach88/homeslot/internal/zone"
)

// TraceKind names a coordinator event.
type TraceKind string

// Trace kinds, one per coordinator operation.
const (
	TraceStart TraceKind = "start"
	TraceEnter TraceKind = "enter"
	TraceExit  TraceKind = "exit"
	TraceDrop  TraceKind = "drop"
	TraceEnd   TraceKind = "end"
	TraceMove  TraceKind = "move"
)

// TraceEvent records one processed coordinator call.
// Ignored out-of-protocol calls are not traced.
type TraceEvent struct {
	Seq       int64       `json:"seq"`
	Kind      TraceKind   `json:"kind"`
	SessionID string      `json:"session_id,omitempty"`
	ItemID    string      `json:"item_id,omitempty"`
	Origin    zone.Origin `json:"-"`
	Slot      int         `json:"slot"`
	Zone      zone.ID     `json:"zone,omitempty"`
	Target    int         `json:"target"`
	Accepted  bool        `json:"accepted"`
	Reason    zone.Reason `json:"reason,omitempty"`
	Index     int         `json:"index"`
	Restored  bool        `json:"restored"`
}

// String renders the event as a single stable line, e.g.
//
//	4 drop session=s-1 zone=remove target=-1 accepted=true index=-1
func (e TraceEvent) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s", e.Seq, e.Kind)
	if e.SessionID != "" {
		fmt.Fprintf(&b, " session=%s", e.SessionID)
	}
	switch e.Kind {
	case TraceStart:
		fmt.Fprintf(&b, " item=%s origin=%s slot=%d", e.ItemID, e.Origin, e.Slot)
	case TraceEnter, TraceExit:
		fmt.Fprintf(&b, " zone=%s", e.Zone)
	case TraceDrop:
		fmt.Fprintf(&b, " zone=%s target=%d accepted=%t index=%d", e.Zone, e.Target, e.Accepted, e.Index)
		if e.Reason != zone.ReasonNone {
			fmt.Fprintf(&b, " reason=%s", e.Reason)
		}
	case TraceEnd:
		fmt.Fprintf(&b, " accepted=%t restored=%t", e.Accepted, e.Restored)
		if e.Restored {
			fmt.Fprintf(&b, " index=%d", e.Index)
		}
	case TraceMove:
		fmt.Fprintf(&b, " item=%s index=%d", e.ItemID, e.Index)
	}
	return b.String()
}
