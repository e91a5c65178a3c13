package zone

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/homeslot/internal/dock"
	"github.com/roach88/homeslot/internal/grid"
	"github.com/roach88/homeslot/internal/item"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func setup(t *testing.T, slots, capacity int) (*grid.Grid, *dock.Dock, *Table) {
	t.Helper()
	g, err := grid.New(slots, grid.WithStrict(true), grid.WithLogger(discard))
	require.NoError(t, err)
	d, err := dock.New(capacity, dock.WithLogger(discard))
	require.NoError(t, err)
	return g, d, Standard(g, d)
}

func app(id string) item.Item {
	return item.MustNew(id, id, "")
}

func lookup(t *testing.T, tbl *Table, id ID) Handler {
	t.Helper()
	h, ok := tbl.Lookup(id)
	require.True(t, ok, "zone %s", id)
	return h
}

func TestStandardTable(t *testing.T) {
	_, _, tbl := setup(t, 3, 2)
	assert.Equal(t, []ID{ZoneCell, ZoneDock, ZoneHome, ZoneRemove}, tbl.IDs())

	_, ok := tbl.Lookup("trash")
	assert.False(t, ok)

	assert.Equal(t, ContainerGrid, lookup(t, tbl, ZoneHome).Container())
	assert.Equal(t, ContainerGrid, lookup(t, tbl, ZoneCell).Container())
	assert.Equal(t, ContainerDock, lookup(t, tbl, ZoneDock).Container())
	assert.Equal(t, ContainerNone, lookup(t, tbl, ZoneRemove).Container())
}

func TestHomeSurface(t *testing.T) {
	t.Run("places in first empty slot", func(t *testing.T) {
		g, _, tbl := setup(t, 4, 2)
		require.NoError(t, g.PlaceAt(0, app("X")))

		dec := lookup(t, tbl, ZoneHome).Accept(FromDrawer(app("A")), NoSlot)
		require.True(t, dec.Accepted)
		assert.Equal(t, 1, dec.Index)
		assert.True(t, g.Registry().Contains("A"))
	})

	t.Run("rejects grid origin", func(t *testing.T) {
		_, _, tbl := setup(t, 4, 2)
		dec := lookup(t, tbl, ZoneHome).Accept(FromGrid(app("A"), 2), NoSlot)
		assert.False(t, dec.Accepted)
		assert.Equal(t, ReasonWrongOrigin, dec.Reason)
	})

	t.Run("rejects duplicate", func(t *testing.T) {
		g, _, tbl := setup(t, 4, 2)
		require.NoError(t, g.PlaceAt(3, app("A")))
		dec := lookup(t, tbl, ZoneHome).Accept(FromDrawer(app("A")), NoSlot)
		assert.Equal(t, ReasonDuplicate, dec.Reason)
		assert.Equal(t, NoSlot, dec.Index)
	})

	t.Run("rejects when full", func(t *testing.T) {
		g, _, tbl := setup(t, 2, 2)
		require.NoError(t, g.PlaceAt(0, app("X")))
		require.NoError(t, g.PlaceAt(1, app("Y")))
		dec := lookup(t, tbl, ZoneHome).Accept(FromDockRef(app("A")), NoSlot)
		assert.Equal(t, ReasonFull, dec.Reason)
	})
}

func TestCell(t *testing.T) {
	g, _, tbl := setup(t, 5, 2)
	cell := lookup(t, tbl, ZoneCell)

	dec := cell.Accept(FromGrid(app("A"), 0), 3)
	require.True(t, dec.Accepted)
	assert.Equal(t, 3, dec.Index)

	dec = cell.Accept(FromDrawer(app("B")), 3)
	require.True(t, dec.Accepted)
	assert.Equal(t, 4, dec.Index, "occupied target searches forward")

	dec = cell.Accept(FromDrawer(app("A")), 0)
	assert.Equal(t, ReasonDuplicate, dec.Reason)
	assert.True(t, grid.IsAlreadyPlaced(dec.Err))

	dec = cell.Accept(FromDrawer(app("C")), 17)
	assert.Equal(t, ReasonOutOfRange, dec.Reason)

	dec = cell.Accept(FromDrawer(app("C")), NoSlot)
	assert.Equal(t, ReasonOutOfRange, dec.Reason)
	assert.Equal(t, 2, g.Registry().Len())
}

func TestDockZone(t *testing.T) {
	_, d, tbl := setup(t, 3, 2)
	dz := lookup(t, tbl, ZoneDock)

	require.True(t, dz.Accept(FromGrid(app("A"), 1), NoSlot).Accepted)
	require.True(t, dz.Accept(FromDrawer(app("B")), NoSlot).Accepted)

	dec := dz.Accept(FromDrawer(app("C")), NoSlot)
	assert.Equal(t, ReasonFull, dec.Reason)
	assert.Equal(t, 2, d.Len())

	d.Remove("B")
	dec = dz.Accept(FromDockRef(app("A")), NoSlot)
	assert.Equal(t, ReasonDuplicate, dec.Reason)
}

func TestRemove(t *testing.T) {
	_, _, tbl := setup(t, 3, 2)
	rm := lookup(t, tbl, ZoneRemove)

	tests := []struct {
		payload Payload
		want    bool
	}{
		{FromGrid(app("A"), 0), true},
		{FromDock(app("A")), false},
		{FromDockRef(app("A")), false},
		{FromDrawer(app("A")), false},
	}
	for _, tt := range tests {
		t.Run(tt.payload.Origin.String(), func(t *testing.T) {
			dec := rm.Accept(tt.payload, NoSlot)
			assert.Equal(t, tt.want, dec.Accepted)
			if !tt.want {
				assert.Equal(t, ReasonWrongOrigin, dec.Reason)
			}
		})
	}
}

func TestTable_RegisterReplaces(t *testing.T) {
	tbl := NewTable(&Remove{})
	tbl.Register(&Remove{})
	assert.Len(t, tbl.IDs(), 1)
}

func TestReasonFor(t *testing.T) {
	g, d, _ := setup(t, 1, 1)
	require.NoError(t, g.PlaceAt(0, app("A")))
	require.NoError(t, d.Add(app("A")))

	_, errAlready := g.PlaceWithDuplicateGuard(0, app("A"))
	_, errFull := g.PlaceWithDuplicateGuard(0, app("B"))
	errRange := g.PlaceAt(4, app("B"))

	tests := []struct {
		err  error
		want Reason
	}{
		{nil, ReasonNone},
		{errAlready, ReasonDuplicate},
		{errFull, ReasonFull},
		{errRange, ReasonOutOfRange},
		{d.Add(app("B")), ReasonFull},
		{fmt.Errorf("wrapped: %w", errFull), ReasonFull},
		{item.ErrEmptyID, ReasonInvalid},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReasonFor(tt.err), "%v", tt.err)
	}
}

func TestReasonMessage(t *testing.T) {
	for _, r := range []Reason{ReasonDuplicate, ReasonFull, ReasonWrongOrigin, ReasonOutOfRange, ReasonNoHandler, ReasonInvalid} {
		assert.NotEmpty(t, r.Message(), string(r))
	}
	assert.Empty(t, ReasonNone.Message())
}
