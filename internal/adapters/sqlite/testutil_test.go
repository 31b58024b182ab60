// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
package sqlite_test

import (
	"context"
	"database/sql"
	"strconv"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/alunos/internal/adapters/sqlite"
	"github.com/example/alunos/internal/db"
	"github.com/example/alunos/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// createTestStudent claims a sequence and persists a student, returning its code.
func createTestStudent(t *testing.T, repo *sqlite.StudentRepository, ctx context.Context, abbrev, name, email, course string) *secondary.StudentRecord {
	t.Helper()

	seq, err := repo.NextSequence(ctx, abbrev)
	if err != nil {
		t.Fatalf("NextSequence failed: %v", err)
	}

	record := &secondary.StudentRecord{
		Code:         abbrev + strconv.Itoa(seq),
		Name:         name,
		Email:        email,
		Course:       course,
		Abbreviation: abbrev,
	}
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return record
}
