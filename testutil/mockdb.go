package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateStateDBFile creates a state database file holding the given
// tab -> session id entries and returns its path
func CreateStateDBFile(t *testing.T, sessions map[string]string) string {
	t.Helper()
	path := filepath.Join(CreateTempDir(t), "state.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS tab_storage (
		tab   TEXT NOT NULL,
		key   TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (tab, key)
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create tab_storage table: %v", err)
	}

	for tab, id := range sessions {
		if _, err := db.Exec("INSERT INTO tab_storage (tab, key, value) VALUES (?, 'chatSessionId', ?)", tab, id); err != nil {
			t.Fatalf("Failed to insert session for tab %s: %v", tab, err)
		}
	}

	return path
}
