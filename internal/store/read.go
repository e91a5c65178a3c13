package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/homeslot/internal/item"
)

// LoadLayout returns the persisted layout, or ErrNoLayout.
func (s *Store) LoadLayout(ctx context.Context) (Layout, error) {
	var l Layout
	err := s.db.QueryRowContext(ctx, `
		SELECT grid_size, dock_capacity, seq FROM layout_meta WHERE id = 1
	`).Scan(&l.GridSize, &l.DockCapacity, &l.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return Layout{}, ErrNoLayout
	}
	if err != nil {
		return Layout{}, fmt.Errorf("load layout: %w", err)
	}

	l.Slots = make([]item.Item, l.GridSize)
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, item_id, label, icon FROM slots ORDER BY idx ASC
	`)
	if err != nil {
		return Layout{}, fmt.Errorf("load layout: query slots: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var idx int
		var it item.Item
		if err := rows.Scan(&idx, &it.ID, &it.Label, &it.IconRef); err != nil {
			return Layout{}, fmt.Errorf("load layout: scan slot: %w", err)
		}
		if idx >= l.GridSize {
			return Layout{}, fmt.Errorf("load layout: slot %d outside grid of %d", idx, l.GridSize)
		}
		l.Slots[idx] = it
	}
	if err := rows.Err(); err != nil {
		return Layout{}, fmt.Errorf("load layout: iterate slots: %w", err)
	}

	l.Dock, err = s.readDock(ctx)
	if err != nil {
		return Layout{}, err
	}
	return l, nil
}

func (s *Store) readDock(ctx context.Context) ([]item.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT item_id, label, icon FROM dock_entries ORDER BY pos ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load layout: query dock: %w", err)
	}
	defer rows.Close()

	entries := []item.Item{}
	for rows.Next() {
		var it item.Item
		if err := rows.Scan(&it.ID, &it.Label, &it.IconRef); err != nil {
			return nil, fmt.Errorf("load layout: scan dock: %w", err)
		}
		entries = append(entries, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load layout: iterate dock: %w", err)
	}
	return entries, nil
}

// ReadSessions returns the most recent limit journaled sessions in seq
// order. A limit <= 0 returns the whole journal.
//
// Returns an empty slice (not nil) if the journal is empty.
func (s *Store) ReadSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, item_id, origin, origin_slot, drops, accepted, accepted_by,
		       landed, last_reason, restored, restored_at, restore_failed, trace
		FROM (
			SELECT * FROM sessions
			ORDER BY seq DESC, id COLLATE BINARY DESC
			LIMIT ?
		)
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	records := []SessionRecord{}
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return records, nil
}

// ReadSession retrieves a single journaled session by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadSession(ctx context.Context, id string) (SessionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, item_id, origin, origin_slot, drops, accepted, accepted_by,
		       landed, last_reason, restored, restored_at, restore_failed, trace
		FROM sessions
		WHERE id = ?
	`, id)
	return scanSession(row)
}

// LastSeq returns the highest trace seq recorded in the layout or the
// journal, or 0 for an empty store.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(
			COALESCE((SELECT MAX(seq) FROM sessions), 0),
			COALESCE((SELECT seq FROM layout_meta WHERE id = 1), 0)
		)
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (SessionRecord, error) {
	var rec SessionRecord
	var accepted, restored, restoreFailed int
	var traceJSON string
	err := row.Scan(
		&rec.ID,
		&rec.Seq,
		&rec.ItemID,
		&rec.Origin,
		&rec.OriginSlot,
		&rec.Drops,
		&accepted,
		&rec.AcceptedBy,
		&rec.Landed,
		&rec.LastReason,
		&restored,
		&rec.RestoredAt,
		&restoreFailed,
		&traceJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionRecord{}, err
		}
		return SessionRecord{}, fmt.Errorf("scan session: %w", err)
	}
	rec.Accepted = accepted == 1
	rec.Restored = restored == 1
	rec.RestoreFailed = restoreFailed == 1

	rec.Trace, err = unmarshalTrace(traceJSON)
	if err != nil {
		return SessionRecord{}, err
	}
	return rec, nil
}
