package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // driver: sqlite
)

// DriverName is the database/sql name registered by modernc.org/sqlite.
const DriverName = "sqlite"

// NewSQLiteDB opens (creating when missing) the SQLite database file at path.
func NewSQLiteDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}

	// One writer; the script runs in a single transaction anyway.
	db.SetMaxOpenConns(1)
	return db, nil
}
