// Package store is the SQLite-backed persistence layer for the
// classification pipeline: it loads raw observations for a run and
// atomically replaces the derived static-AP and mobile-track tables with a
// run's output.
package store

import (
	"database/sql"
	"embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps a SQLite connection opened against the sighting database.
type DB struct {
	*sql.DB
}

// applyPragmas sets the SQLite pragmas this workload relies on: WAL so the
// CLI and a concurrent report tool can both hold read handles, a busy
// timeout so a held write lock doesn't surface as an immediate error, and
// memory temp storage since windowing sorts are all in-process anyway.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to execute %q: %w", p, err)
		}
	}
	return nil
}

// Open opens (or creates) the database at path, applies pragmas, and brings
// the schema up to the latest migration.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db := &DB{sqlDB}

	if err := applyPragmas(sqlDB); err != nil {
		db.Close()
		return nil, err
	}

	if err := db.migrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return db, nil
}
