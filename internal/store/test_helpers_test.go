package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/homeslot/internal/item"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a journal record with minimal required fields.
func createTestRecord(id, itemID string, seq int64) SessionRecord {
	return SessionRecord{
		ID:         id,
		Seq:        seq,
		ItemID:     itemID,
		Origin:     "home",
		OriginSlot: 0,
		Landed:     -1,
		RestoredAt: -1,
		Trace:      []string{},
	}
}

func app(id string) item.Item {
	return item.MustNew(id, id, "")
}
