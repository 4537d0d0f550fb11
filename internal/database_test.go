package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iksnae/bizspark-chat/testutil"
)

func TestOpenStateDatabase(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "existing database",
			setup: func(t *testing.T) string {
				return testutil.CreateStateDBFile(t, map[string]string{"default": "abc"})
			},
		},
		{
			name: "missing file is created with parent dirs",
			setup: func(t *testing.T) string {
				return filepath.Join(testutil.CreateTempDir(t), "nested", "dir", "state.db")
			},
		},
		{
			name: "in-memory database",
			setup: func(t *testing.T) string {
				return ":memory:"
			},
		},
		{
			name: "parent is a file",
			setup: func(t *testing.T) string {
				file := filepath.Join(testutil.CreateTempDir(t), "blocker")
				if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
					t.Fatal(err)
				}
				return filepath.Join(file, "state.db")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			db, err := OpenStateDatabase(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenStateDatabase() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var se *StorageError
				if !errors.As(err, &se) {
					t.Errorf("OpenStateDatabase() error = %T, want *StorageError", err)
				}
				return
			}
			defer db.Close()
			if err := db.Ping(); err != nil {
				t.Errorf("Database ping failed: %v", err)
			}
		})
	}
}

func TestSQLiteTabStorage(t *testing.T) {
	db, err := OpenStateDatabase(":memory:")
	if err != nil {
		t.Fatalf("OpenStateDatabase() error = %v", err)
	}
	defer db.Close()

	s := NewSQLiteTabStorage(db, "work")
	if s.Tab() != "work" {
		t.Errorf("Tab() = %q, want work", s.Tab())
	}

	if _, ok, err := s.Get("k"); err != nil || ok {
		t.Fatalf("Get() on empty storage = ok %v, err %v", ok, err)
	}

	if err := s.Set("k", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set("k", "v2"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	if v, ok, err := s.Get("k"); err != nil || !ok || v != "v2" {
		t.Errorf("Get() = %q, %v, %v; want v2, true, nil", v, ok, err)
	}

	other := NewSQLiteTabStorage(db, "home")
	if _, ok, _ := other.Get("k"); ok {
		t.Error("values must not leak between tabs")
	}

	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("Get() after Delete() should miss")
	}
	if err := s.Delete("k"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestListTabs(t *testing.T) {
	path := testutil.CreateStateDBFile(t, map[string]string{"b": "2", "a": "1"})
	db, err := OpenStateDatabase(path)
	if err != nil {
		t.Fatalf("OpenStateDatabase() error = %v", err)
	}
	defer db.Close()

	tabs, err := ListTabs(db)
	if err != nil {
		t.Fatalf("ListTabs() error = %v", err)
	}
	if len(tabs) != 2 || tabs[0] != "a" || tabs[1] != "b" {
		t.Errorf("ListTabs() = %v, want [a b]", tabs)
	}
}
