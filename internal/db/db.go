package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// memoryDSN is a private database that lives only as long as its connection.
const memoryDSN = ":memory:"

// Open opens a fresh in-memory registry database with the schema applied.
// The pool is capped at one connection: every connection to ":memory:" is a
// separate database, so a second one would see empty tables.
func Open() (*sql.DB, error) {
	database, err := sql.Open("sqlite3", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	database.SetMaxOpenConns(1)
	database.SetMaxIdleConns(1)
	database.SetConnMaxLifetime(0)
	database.SetConnMaxIdleTime(0)

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}
