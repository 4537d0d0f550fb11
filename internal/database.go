package internal

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const createTabStorageSQL = `
CREATE TABLE IF NOT EXISTS tab_storage (
	tab   TEXT NOT NULL,
	key   TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (tab, key)
)`

// OpenStateDatabase opens (creating if needed) the client state database
func OpenStateDatabase(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, &StorageError{Path: path, Op: "open", Err: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}
	// a single connection keeps ":memory:" databases coherent
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: errors.Wrap(err, "database ping failed")}
	}

	if _, err := db.Exec(createTabStorageSQL); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: errors.Wrap(err, "failed to create tab_storage")}
	}

	return db, nil
}

// SQLiteTabStorage stores values for one tab scope in the state database
type SQLiteTabStorage struct {
	db  *sql.DB
	tab string
}

// NewSQLiteTabStorage creates storage for the given tab scope
func NewSQLiteTabStorage(db *sql.DB, tab string) *SQLiteTabStorage {
	return &SQLiteTabStorage{db: db, tab: tab}
}

// Tab returns the scope name
func (s *SQLiteTabStorage) Tab() string {
	return s.tab
}

// Get returns the value stored under key
func (s *SQLiteTabStorage) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM tab_storage WHERE tab = ? AND key = ?", s.tab, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Path: s.tab + "/" + key, Op: "get", Err: err}
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (s *SQLiteTabStorage) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO tab_storage (tab, key, value) VALUES (?, ?, ?) ON CONFLICT(tab, key) DO UPDATE SET value = excluded.value",
		s.tab, key, value,
	)
	if err != nil {
		return &StorageError{Path: s.tab + "/" + key, Op: "set", Err: err}
	}
	return nil
}

// Delete removes key
func (s *SQLiteTabStorage) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM tab_storage WHERE tab = ? AND key = ?", s.tab, key); err != nil {
		return &StorageError{Path: s.tab + "/" + key, Op: "delete", Err: err}
	}
	return nil
}

// ListTabs returns every tab scope that has stored values
func ListTabs(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SELECT DISTINCT tab FROM tab_storage ORDER BY tab")
	if err != nil {
		return nil, errors.Wrap(err, "query failed")
	}
	defer rows.Close()

	var tabs []string
	for rows.Next() {
		var tab string
		if err := rows.Scan(&tab); err != nil {
			return nil, errors.Wrap(err, "scan failed")
		}
		tabs = append(tabs, tab)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows iteration error")
	}
	return tabs, nil
}
