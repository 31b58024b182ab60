// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/alunos/internal/ports/secondary"
)

const entityStudent = "student"

const studentColumns = "code, name, email, course, abbreviation, created_at, updated_at"

// StudentRepository implements secondary.StudentRepository with SQLite.
type StudentRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewStudentRepository creates a new SQLite student repository.
// logWriter is optional (can be nil for tests).
func NewStudentRepository(db *sql.DB, logWriter secondary.LogWriter) *StudentRepository {
	return &StudentRepository{db: db, logWriter: logWriter}
}

// Create persists a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *secondary.StudentRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO students (code, name, email, email_key, course, abbreviation) VALUES (?, ?, ?, ?, ?, ?)",
		student.Code, student.Name, student.Email, emailKey(student.Email), student.Course, student.Abbreviation,
	)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, entityStudent, student.Code)
	}

	return nil
}

// GetByCode retrieves a record by exact enrollment code (nil if none).
func (r *StudentRepository) GetByCode(ctx context.Context, code string) (*secondary.StudentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+studentColumns+" FROM students WHERE code = ?",
		code,
	)
	return scanStudentRow(row)
}

// GetByEmail retrieves a record by case-insensitive email (nil if none).
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*secondary.StudentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+studentColumns+" FROM students WHERE email_key = ?",
		emailKey(email),
	)
	return scanStudentRow(row)
}

// List retrieves all records in insertion order.
func (r *StudentRepository) List(ctx context.Context) ([]*secondary.StudentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+studentColumns+" FROM students ORDER BY position ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []*secondary.StudentRecord
	for rows.Next() {
		var (
			createdAt time.Time
			updatedAt time.Time
		)

		record := &secondary.StudentRecord{}
		err := rows.Scan(&record.Code, &record.Name, &record.Email, &record.Course, &record.Abbreviation, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}

		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)

		students = append(students, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return students, nil
}

// Update overwrites name, email and course of the record with the same code.
// The abbreviation column is left as it was.
func (r *StudentRepository) Update(ctx context.Context, student *secondary.StudentRecord) error {
	current, err := r.GetByCode(ctx, student.Code)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("student %s not found", student.Code)
	}

	_, err = r.db.ExecContext(ctx,
		"UPDATE students SET name = ?, email = ?, email_key = ?, course = ?, updated_at = CURRENT_TIMESTAMP WHERE code = ?",
		student.Name, student.Email, emailKey(student.Email), student.Course, student.Code,
	)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}

	if r.logWriter != nil {
		r.logFieldChange(ctx, student.Code, "name", current.Name, student.Name)
		r.logFieldChange(ctx, student.Code, "email", current.Email, student.Email)
		r.logFieldChange(ctx, student.Code, "course", current.Course, student.Course)
	}

	return nil
}

// Rekey atomically removes oldCode and inserts student under its new code.
// The new row goes to the end of the listing and keeps the original created_at.
func (r *StudentRepository) Rekey(ctx context.Context, oldCode string, student *secondary.StudentRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var createdAt time.Time
	err = tx.QueryRowContext(ctx, "SELECT created_at FROM students WHERE code = ?", oldCode).Scan(&createdAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("student %s not found", oldCode)
	}
	if err != nil {
		return fmt.Errorf("failed to get student: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM students WHERE code = ?", oldCode); err != nil {
		return fmt.Errorf("failed to remove old code: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO students (code, name, email, email_key, course, abbreviation, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		student.Code, student.Name, student.Email, emailKey(student.Email), student.Course, student.Abbreviation, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert new code: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rekey: %w", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, entityStudent, student.Code, "code", oldCode, student.Code)
	}

	return nil
}

// Delete removes a record from persistence.
func (r *StudentRepository) Delete(ctx context.Context, code string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE code = ?", code)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("student %s not found", code)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogDelete(ctx, entityStudent, code)
	}

	return nil
}

// NextSequence claims the next sequence number for an abbreviation.
func (r *StudentRepository) NextSequence(ctx context.Context, abbreviation string) (int, error) {
	var seq int
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO sequences (abbreviation, last_issued) VALUES (?, 1)
		 ON CONFLICT(abbreviation) DO UPDATE SET last_issued = last_issued + 1
		 RETURNING last_issued`,
		abbreviation,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to claim sequence for %s: %w", abbreviation, err)
	}
	return seq, nil
}

func (r *StudentRepository) logFieldChange(ctx context.Context, code, field, oldValue, newValue string) {
	if oldValue == newValue {
		return
	}
	_ = r.logWriter.LogUpdate(ctx, entityStudent, code, field, oldValue, newValue)
}

func scanStudentRow(row *sql.Row) (*secondary.StudentRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.StudentRecord{}
	err := row.Scan(&record.Code, &record.Name, &record.Email, &record.Course, &record.Abbreviation, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// emailKey is the uniqueness key stored alongside the email.
func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Ensure StudentRepository implements the interface.
var _ secondary.StudentRepository = (*StudentRepository)(nil)
