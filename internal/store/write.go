package store

import (
	"context"
	"fmt"

	"github.com/roach88/homeslot/internal/session"
)

// SessionRecord is one journaled drag session.
type SessionRecord struct {
	ID            string   `json:"id"`
	Seq           int64    `json:"seq"`
	ItemID        string   `json:"item_id"`
	Origin        string   `json:"origin"`
	OriginSlot    int      `json:"origin_slot"`
	Drops         int      `json:"drops"`
	Accepted      bool     `json:"accepted"`
	AcceptedBy    string   `json:"accepted_by,omitempty"`
	Landed        int      `json:"landed"`
	LastReason    string   `json:"last_reason,omitempty"`
	Restored      bool     `json:"restored"`
	RestoredAt    int      `json:"restored_at"`
	RestoreFailed bool     `json:"restore_failed"`
	Trace         []string `json:"trace"`
}

// NewSessionRecord builds a journal record from a session outcome and the
// trace events the session emitted. Seq is the seq of the last event.
func NewSessionRecord(out session.Outcome, trace []session.TraceEvent) SessionRecord {
	rec := SessionRecord{
		ID:            out.SessionID,
		ItemID:        out.Item.ID,
		Origin:        out.Origin.String(),
		OriginSlot:    out.OriginSlot,
		Drops:         out.Drops,
		Accepted:      out.Accepted,
		AcceptedBy:    string(out.AcceptedBy),
		Landed:        out.Landed,
		LastReason:    string(out.LastReason),
		Restored:      out.Restored,
		RestoredAt:    out.RestoredAt,
		RestoreFailed: out.RestoreFailed,
		Trace:         make([]string, 0, len(trace)),
	}
	for _, ev := range trace {
		rec.Trace = append(rec.Trace, ev.String())
		if ev.Seq > rec.Seq {
			rec.Seq = ev.Seq
		}
	}
	return rec
}

// SaveLayout replaces the persisted layout with l in one transaction.
func (s *Store) SaveLayout(ctx context.Context, l Layout) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save layout: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for _, stmt := range []string{"DELETE FROM slots", "DELETE FROM dock_entries"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("save layout: %w", err)
		}
	}

	for idx, it := range l.Slots {
		if it.IsZero() {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO slots (idx, item_id, label, icon) VALUES (?, ?, ?, ?)
		`, idx, it.ID, it.Label, it.IconRef); err != nil {
			return fmt.Errorf("save layout: slot %d: %w", idx, err)
		}
	}

	for pos, it := range l.Dock {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO dock_entries (pos, item_id, label, icon) VALUES (?, ?, ?, ?)
		`, pos, it.ID, it.Label, it.IconRef); err != nil {
			return fmt.Errorf("save layout: dock %d: %w", pos, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO layout_meta (id, grid_size, dock_capacity, seq)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			grid_size = excluded.grid_size,
			dock_capacity = excluded.dock_capacity,
			seq = excluded.seq
	`, l.GridSize, l.DockCapacity, l.Seq); err != nil {
		return fmt.Errorf("save layout: meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save layout: commit: %w", err)
	}
	return nil
}

// AppendSession journals a finished session.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
func (s *Store) AppendSession(ctx context.Context, rec SessionRecord) error {
	traceJSON, err := marshalTrace(rec.Trace)
	if err != nil {
		return fmt.Errorf("append session: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions
		(id, seq, item_id, origin, origin_slot, drops, accepted, accepted_by,
		 landed, last_reason, restored, restored_at, restore_failed, trace)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Seq,
		rec.ItemID,
		rec.Origin,
		rec.OriginSlot,
		rec.Drops,
		boolToInt(rec.Accepted),
		rec.AcceptedBy,
		rec.Landed,
		rec.LastReason,
		boolToInt(rec.Restored),
		rec.RestoredAt,
		boolToInt(rec.RestoreFailed),
		traceJSON,
	)
	if err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}
