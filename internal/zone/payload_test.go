package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigin(t *testing.T) {
	for _, o := range []Origin{OriginHomeGrid, OriginDock, OriginDrawer, OriginDockRef} {
		got, err := ParseOrigin(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}

	got, err := ParseOrigin("  HOME ")
	require.NoError(t, err)
	assert.Equal(t, OriginHomeGrid, got)

	_, err = ParseOrigin("widget")
	assert.Error(t, err)
	assert.Equal(t, "origin(0)", Origin(0).String())
}

func TestOrigin_Restorable(t *testing.T) {
	assert.True(t, OriginHomeGrid.Restorable())
	assert.True(t, OriginDock.Restorable())
	assert.False(t, OriginDrawer.Restorable())
	assert.False(t, OriginDockRef.Restorable())
}

func TestPayloadConstructors(t *testing.T) {
	p := FromGrid(app("A"), 4)
	assert.Equal(t, OriginHomeGrid, p.Origin)
	assert.Equal(t, 4, p.OriginSlot)

	assert.Equal(t, NoSlot, FromDock(app("A")).OriginSlot)
	assert.Equal(t, OriginDrawer, FromDrawer(app("A")).Origin)
	assert.Equal(t, OriginDockRef, FromDockRef(app("A")).Origin)
}
