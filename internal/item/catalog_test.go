package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawer(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(
		MustNew("com.android.settings", "Settings", "settings"),
		MustNew("com.ATS.MySlates", "MySlates", "slates"),
		MustNew("com.adobe.reader", "Adobe Reader", "reader"),
	)
	require.NoError(t, err)
	return c
}

func TestCatalog_Resolve(t *testing.T) {
	c := drawer(t)

	it, err := c.Resolve("com.adobe.reader")
	require.NoError(t, err)
	assert.Equal(t, "Adobe Reader", it.Label)

	_, err = c.Resolve("com.example.missing")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestCatalog_Allowed(t *testing.T) {
	c := drawer(t)
	assert.True(t, c.Allowed(" com.android.settings "))
	assert.False(t, c.Allowed("com.example.game"))
}

func TestCatalog_DuplicateRejected(t *testing.T) {
	_, err := NewCatalog(
		MustNew("a", "A", ""),
		MustNew("a", "Again", ""),
	)
	assert.Error(t, err)
}

func TestCatalog_ZeroItemRejected(t *testing.T) {
	_, err := NewCatalog(Item{})
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestCatalog_Search(t *testing.T) {
	c := drawer(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty returns all", "", []string{"com.android.settings", "com.ATS.MySlates", "com.adobe.reader"}},
		{"case insensitive", "SLATES", []string{"com.ATS.MySlates"}},
		{"substring", "e", []string{"com.android.settings", "com.ATS.MySlates", "com.adobe.reader"}},
		{"reader", "read", []string{"com.adobe.reader"}},
		{"no match", "camera", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, it := range c.Search(tt.query) {
				got = append(got, it.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalog_ItemsIsCopy(t *testing.T) {
	c := drawer(t)
	items := c.Items()
	items[0] = MustNew("mutated", "Mutated", "")

	first, err := c.Resolve("com.android.settings")
	require.NoError(t, err)
	assert.Equal(t, "Settings", first.Label)
	assert.Equal(t, 3, c.Len())
}

func TestCatalog_Suggest(t *testing.T) {
	c := drawer(t)

	tests := []struct {
		id   string
		want string
		ok   bool
	}{
		{"com.adobe.raeder", "com.adobe.reader", true},
		{"com.android.setings", "com.android.settings", true},
		{" com.ATS.MySlate ", "com.ATS.MySlates", true},
		{"com.example.game", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			it, ok := c.Suggest(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, it.ID)
		})
	}
}
