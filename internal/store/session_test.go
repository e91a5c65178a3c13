package store

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/homeslot/internal/item"
	"github.com/roach88/homeslot/internal/session"
	"github.com/roach88/homeslot/internal/zone"
)

func TestNewSessionRecord(t *testing.T) {
	out := session.Outcome{
		SessionID:  "s-1",
		Item:       item.MustNew("a", "Alpha", ""),
		Origin:     zone.OriginHomeGrid,
		OriginSlot: 2,
		Drops:      1,
		Accepted:   true,
		AcceptedBy: zone.ZoneRemove,
		Landed:     zone.NoSlot,
		RestoredAt: zone.NoSlot,
	}
	trace := []session.TraceEvent{
		{Seq: 4, Kind: session.TraceStart, SessionID: "s-1", ItemID: "a", Origin: zone.OriginHomeGrid, Slot: 2},
		{Seq: 5, Kind: session.TraceDrop, SessionID: "s-1", Zone: zone.ZoneRemove, Target: -1, Accepted: true, Index: -1},
		{Seq: 6, Kind: session.TraceEnd, SessionID: "s-1", Accepted: true},
	}

	rec := NewSessionRecord(out, trace)
	assert.Equal(t, int64(6), rec.Seq)
	assert.Equal(t, "home", rec.Origin)
	assert.Equal(t, "remove", rec.AcceptedBy)
	assert.Equal(t, []string{
		"4 start session=s-1 item=a origin=home slot=2",
		"5 drop session=s-1 zone=remove target=-1 accepted=true index=-1",
		"6 end session=s-1 accepted=true restored=false",
	}, rec.Trace)
}

func TestAppendSession_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rec := SessionRecord{
		ID:            "s-1",
		Seq:           3,
		ItemID:        "a<b>&c",
		Origin:        "dock",
		OriginSlot:    1,
		Drops:         2,
		LastReason:    "FULL",
		Landed:        -1,
		Restored:      true,
		RestoredAt:    1,
		RestoreFailed: false,
		Trace:         []string{"1 start session=s-1 item=a<b>&c origin=dock slot=1"},
	}
	require.NoError(t, s.AppendSession(ctx, rec))

	got, err := s.ReadSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	var raw string
	require.NoError(t, s.db.QueryRow("SELECT trace FROM sessions WHERE id = 's-1'").Scan(&raw))
	assert.Contains(t, raw, "a<b>&c", "trace JSON is stored without HTML escaping")
}

func TestAppendSession_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first := createTestRecord("s-1", "a", 1)
	require.NoError(t, s.AppendSession(ctx, first))

	second := createTestRecord("s-1", "b", 2)
	require.NoError(t, s.AppendSession(ctx, second))

	got, err := s.ReadSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ItemID)
}

func TestReadSession_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.ReadSession(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReadSessions_OrderAndLimit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	empty, err := s.ReadSessions(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	// Inserted out of order; seq ties break on id.
	for _, r := range []SessionRecord{
		createTestRecord("s-c", "c", 30),
		createTestRecord("s-a", "a", 10),
		createTestRecord("s-b2", "b", 20),
		createTestRecord("s-b1", "b", 20),
	} {
		require.NoError(t, s.AppendSession(ctx, r))
	}

	all, err := s.ReadSessions(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"s-a", "s-b1", "s-b2", "s-c"}, ids(all))

	recent, err := s.ReadSessions(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"s-b2", "s-c"}, ids(recent))
}

func TestLastSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq, err := s.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)

	require.NoError(t, s.SaveLayout(ctx, Layout{GridSize: 1, DockCapacity: 1, Seq: 12}))
	seq, err = s.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), seq)

	for i := 1; i <= 3; i++ {
		require.NoError(t, s.AppendSession(ctx, createTestRecord(fmt.Sprintf("s-%d", i), "a", int64(10*i))))
	}
	seq, err = s.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(30), seq)
}

func ids(recs []SessionRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}
