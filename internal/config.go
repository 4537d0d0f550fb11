package internal

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultEndpoint   = "http://localhost:8000"
	DefaultTab        = "default"
	DefaultTimeout    = 30 * time.Second
	DefaultCatalogTTL = 5 * time.Minute
)

// Config is the resolved client configuration
type Config struct {
	Endpoint   string        `mapstructure:"endpoint"`
	Tab        string        `mapstructure:"tab"`
	StateDB    string        `mapstructure:"state-db"`
	Ephemeral  bool          `mapstructure:"ephemeral"`
	Timeout    time.Duration `mapstructure:"timeout"`
	CatalogTTL time.Duration `mapstructure:"catalog-ttl"`
	LogFile    string        `mapstructure:"log-file"`
}

// StateDir returns the directory holding client state and logs
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bizspark"
	}
	return filepath.Join(home, ".bizspark")
}

// DefaultStateDB returns the default state database path
func DefaultStateDB() string {
	return filepath.Join(StateDir(), "state.db")
}

// DefaultLogFile returns the log file used while the TUI owns the terminal
func DefaultLogFile() string {
	return filepath.Join(StateDir(), "bizspark.log")
}

// Validate fills defaults and checks the endpoint
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: expected http(s)://host[:port]", c.Endpoint)
	}
	if c.Tab == "" {
		c.Tab = DefaultTab
	}
	if c.StateDB == "" {
		c.StateDB = DefaultStateDB()
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.CatalogTTL <= 0 {
		c.CatalogTTL = DefaultCatalogTTL
	}
	return nil
}

// OpenTabStorage returns the tab storage selected by the config and a
// close function for it
func (c *Config) OpenTabStorage() (TabStorage, func() error, error) {
	if c.Ephemeral {
		return NewMemoryTabStorage(), func() error { return nil }, nil
	}
	db, err := OpenStateDatabase(c.StateDB)
	if err != nil {
		return nil, nil, err
	}
	return NewSQLiteTabStorage(db, c.Tab), db.Close, nil
}
