package grid

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/homeslot/internal/item"
)

func TestRegistry_StrictPanics(t *testing.T) {
	r := newRegistry(4, true, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.add("A")

	assert.Panics(t, func() { r.add("A") })
	assert.Panics(t, func() { r.remove("B") })
}

func TestRegistry_LenientIsNoop(t *testing.T) {
	r := newRegistry(4, false, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.add("A")

	assert.NotPanics(t, func() { r.add("A") })
	assert.NotPanics(t, func() { r.remove("B") })
	assert.Equal(t, []string{"A"}, r.IDs())
}

func TestRegistry_Rebuild(t *testing.T) {
	r := newRegistry(4, true, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.add("stale")

	r.rebuild([]item.Item{item.MustNew("B", "B", ""), {}, item.MustNew("A", "A", "")})

	assert.Equal(t, []string{"A", "B"}, r.IDs())
	assert.False(t, r.Contains("stale"))
	assert.Equal(t, 2, r.Len())
}

func TestGrid_VerifyDetectsDrift(t *testing.T) {
	g := newTestGrid(t, 3)
	g.slots[1] = item.MustNew("ghost", "ghost", "")
	assert.Error(t, g.Verify())

	g.RebuildRegistry()
	assert.NoError(t, g.Verify())

	g.registry.ids["phantom"] = struct{}{}
	assert.Error(t, g.Verify())
}
