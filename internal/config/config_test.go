package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.Nil(t, cfg.Validate())
	assert.Equal(t, 15, cfg.Grid.Slots)
	assert.Equal(t, 3, cfg.Grid.Columns)
	assert.Equal(t, 4, cfg.Dock.Capacity)
	assert.Len(t, cfg.Drawer.Items, 3)
}

func TestParse_EmptyYieldsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_PartialOverrideKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
grid:
  slots: 6
debug: true
`))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Grid.Slots)
	assert.Equal(t, 3, cfg.Grid.Columns)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "homeslot.db", cfg.Database)
}

func TestParse_FullFile(t *testing.T) {
	cfg, err := Parse([]byte(`
grid: {slots: 8, columns: 4}
dock:
  capacity: 2
  items: [a]
drawer:
  items:
    - {id: a, label: Alpha, icon: a.png}
    - {id: b}
database: /tmp/layout.db
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, cfg.Dock.Items)
	assert.Equal(t, "b", cfg.Drawer.Items[1].ID)
	assert.Equal(t, "/tmp/layout.db", cfg.Database)
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := Parse([]byte("grid:\n  rows: 5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows")
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"zero slots", "grid: {slots: 0, columns: 1}", "slots"},
		{"columns exceed slots", "grid: {slots: 2, columns: 3}", "columns"},
		{"dock over capacity", "dock: {capacity: 2}", "items"},
		{"zero capacity", "dock: {capacity: 0, items: []}", "capacity"},
		{"empty drawer id", "dock: {items: []}\ndrawer:\n  items: [{id: ''}]", "id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.NotEmpty(t, verrs)
			assert.Equal(t, ErrCodeSchema, verrs[0].Code)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_CrossFieldChecks(t *testing.T) {
	cfg := Default()
	cfg.Drawer.Items = append(cfg.Drawer.Items, DrawerItem{ID: "com.adobe.reader"})
	cfg.Dock.Items = []string{"com.android.settings", "org.example.missing"}

	errs := cfg.Validate()
	require.Len(t, errs, 2)
	assert.Equal(t, ErrCodeDuplicateID, errs[0].Code)
	assert.Equal(t, "drawer.items[3].id", errs[0].Field)
	assert.Equal(t, ErrCodeUnknownDock, errs[1].Code)
	assert.Equal(t, "dock.items[1]", errs[1].Field)
}

func TestLoad(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "homeslot.yaml")
		require.NoError(t, os.WriteFile(path, []byte("grid: {slots: 30}\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.Grid.Slots)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid file names path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("grid: {slots: -1}\n"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})
}
