package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NormalizesID(t *testing.T) {
	// "e" + combining acute accent vs precomposed U+00E9
	decomposed, err := New("  com.cafe\u0301  ", "Cafe\u0301", "")
	require.NoError(t, err)
	precomposed, err := New("com.caf\u00e9", "Caf\u00e9", "")
	require.NoError(t, err)

	assert.Equal(t, precomposed.ID, decomposed.ID)
	assert.Equal(t, precomposed.Label, decomposed.Label)
	assert.True(t, decomposed.Same(precomposed))
}

func TestNew_EmptyID(t *testing.T) {
	_, err := New("   ", "Nothing", "")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestNew_LabelDefaultsToID(t *testing.T) {
	it, err := New("com.adobe.reader", "", "")
	require.NoError(t, err)
	assert.Equal(t, "com.adobe.reader", it.Label)
	assert.Equal(t, "com.adobe.reader", it.String())
}

func TestItem_SameIgnoresDisplayMetadata(t *testing.T) {
	a := MustNew("com.android.settings", "Settings", "gear")
	b := MustNew("com.android.settings", "Einstellungen", "cog")
	assert.True(t, a.Same(b))
	assert.Equal(t, "Settings (com.android.settings)", a.String())
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew("", "x", "") })
}

func TestItem_IsZero(t *testing.T) {
	assert.True(t, Item{}.IsZero())
	assert.False(t, MustNew("a", "A", "").IsZero())
}
