package storage

import (
	"testing"

	_ "modernc.org/sqlite"
)

// TestInitDB_CreatesSessionTable verifies the schema and that it is idempotent.
func TestInitDB_CreatesSessionTable(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := InitDB(db); err != nil {
			t.Fatalf("InitDB run %d: %v", i+1, err)
		}
	}

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='session'").Scan(&name)
	if err != nil {
		t.Fatalf("session table missing: %v", err)
	}

	var idx string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name='idx_session_expires_at'").Scan(&idx)
	if err != nil {
		t.Errorf("expires_at index missing: %v", err)
	}
}
