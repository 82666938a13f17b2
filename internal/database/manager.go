// Package database opens the sortdl SQLite database and applies migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Manager owns the journal database handle.
type Manager struct {
	db  *sql.DB
	dsn string
}

// NewManager opens dsn, tunes the pool for it and migrates the schema
// to the latest version.
func NewManager(ctx context.Context, dsn string) (*Manager, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dsn == MemoryDSN {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(2)
	}
	db.SetConnMaxLifetime(time.Hour)

	for _, pragma := range pragmasFor(dsn) {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}

	manager := &Manager{db: db, dsn: dsn}

	if err := manager.runMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return manager, nil
}

// pragmasFor returns the connection pragmas for dsn. WAL needs a file.
func pragmasFor(dsn string) []string {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA temp_store = MEMORY",
	}
	if dsn != MemoryDSN {
		pragmas = append(pragmas,
			"PRAGMA journal_mode = WAL",
			"PRAGMA synchronous = NORMAL",
		)
	}
	return pragmas
}

// DB returns the underlying handle.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// DSN returns the data source the manager was opened with.
func (m *Manager) DSN() string {
	return m.dsn
}

// Close closes the handle. It is safe on a nil handle.
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	if err := m.db.Close(); err != nil {
		return fmt.Errorf("failed to close database %s: %w", m.dsn, err)
	}
	return nil
}
