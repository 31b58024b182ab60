package db

import "database/sql"

// SchemaSQL is the complete registry schema.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Repository
// tests load it via GetSchemaSQL() instead of hardcoding CREATE TABLE
// statements, so a column referenced by code but missing here fails the
// tests with "no such column".
//
// The database is in-memory and recreated on every run, so there are no
// migrations.
const SchemaSQL = `
-- Students (position keeps insertion order; a re-keyed row gets a new one)
CREATE TABLE IF NOT EXISTS students (
	position INTEGER PRIMARY KEY AUTOINCREMENT,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	email_key TEXT NOT NULL UNIQUE,
	course TEXT NOT NULL,
	abbreviation TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Sequences (last issued number per abbreviation; rows are never deleted)
CREATE TABLE IF NOT EXISTS sequences (
	abbreviation TEXT PRIMARY KEY,
	last_issued INTEGER NOT NULL CHECK(last_issued > 0)
);

-- Audit log (immutable trail of registry mutations)
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	session_id TEXT,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_audit_log_session ON audit_log(session_id);
`

// InitSchema creates the database schema.
func InitSchema(database *sql.DB) error {
	_, err := database.Exec(SchemaSQL)
	return err
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
