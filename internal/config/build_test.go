package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/homeslot/internal/grid"
	"github.com/roach88/homeslot/internal/item"
)

func TestCatalog(t *testing.T) {
	cat, err := Default().Catalog()
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())

	reader, err := cat.Resolve("com.adobe.reader")
	require.NoError(t, err)
	assert.Equal(t, "Adobe Reader", reader.Label)
	assert.Equal(t, "reader", reader.IconRef)
}

func TestCatalog_LabelDefaultsToID(t *testing.T) {
	cfg := &Config{Drawer: DrawerConfig{Items: []DrawerItem{{ID: "x"}}}}
	cat, err := cfg.Catalog()
	require.NoError(t, err)

	it, err := cat.Resolve("x")
	require.NoError(t, err)
	assert.Equal(t, "x", it.Label)
}

func TestNewGrid(t *testing.T) {
	cfg := Default()
	cfg.Grid.Slots = 6

	var changed []int
	g, err := cfg.NewGrid(grid.WithObserver(func(i int) { changed = append(changed, i) }))
	require.NoError(t, err)
	assert.Equal(t, 6, g.Size())

	require.NoError(t, g.PlaceAt(2, item.MustNew("a", "", "")))
	assert.Equal(t, []int{2}, changed)
}

func TestNewDock_SeedsInOrder(t *testing.T) {
	cfg := Default()
	cat, err := cfg.Catalog()
	require.NoError(t, err)

	d, err := cfg.NewDock(cat, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Capacity())

	var ids []string
	for _, it := range d.Entries() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, cfg.Dock.Items, ids)
}

func TestNewDock_SkipsUnknownAndOverflow(t *testing.T) {
	cfg := &Config{
		Dock: DockConfig{Capacity: 1, Items: []string{"ghost", "a", "b"}},
		Drawer: DrawerConfig{Items: []DrawerItem{
			{ID: "a"}, {ID: "b"},
		}},
	}
	cat, err := cfg.Catalog()
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	d, err := cfg.NewDock(cat, logger)
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())
	assert.True(t, d.Contains("a"))

	assert.Contains(t, logs.String(), "id=ghost")
	assert.Contains(t, logs.String(), "id=b")
}
