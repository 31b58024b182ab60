package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/alunos/internal/ports/secondary"
)

// AuditLogRepository implements secondary.AuditLogRepository with SQLite.
type AuditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new SQLite audit log repository.
func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create persists a new audit log entry.
func (r *AuditLogRepository) Create(ctx context.Context, log *secondary.AuditLogRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, session_id, entity_type, entity_id, action, field_name, old_value, new_value)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID,
		nullString(log.SessionID),
		log.EntityType,
		log.EntityID,
		log.Action,
		nullString(log.FieldName),
		nullString(log.OldValue),
		nullString(log.NewValue),
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}
	return nil
}

// List retrieves log entries matching the given filters, oldest first.
func (r *AuditLogRepository) List(ctx context.Context, filters secondary.AuditLogFilters) ([]*secondary.AuditLogRecord, error) {
	query := `SELECT id, session_id, entity_type, entity_id, action, field_name, old_value, new_value, created_at
		FROM audit_log WHERE 1=1`
	var args []any

	if filters.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filters.SessionID)
	}
	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}
	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}
	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	query += " ORDER BY rowid ASC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit log: %w", err)
	}
	defer rows.Close()

	var logs []*secondary.AuditLogRecord
	for rows.Next() {
		var (
			sessionID sql.NullString
			fieldName sql.NullString
			oldValue  sql.NullString
			newValue  sql.NullString
			createdAt time.Time
		)

		record := &secondary.AuditLogRecord{}
		err := rows.Scan(&record.ID, &sessionID, &record.EntityType, &record.EntityID, &record.Action,
			&fieldName, &oldValue, &newValue, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
		}

		record.SessionID = sessionID.String
		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		logs = append(logs, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list audit log: %w", err)
	}

	return logs, nil
}

// GetNextID returns the next available log ID.
func (r *AuditLogRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM audit_log",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next log ID: %w", err)
	}

	return fmt.Sprintf("LOG-%04d", maxID+1), nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure AuditLogRepository implements the interface.
var _ secondary.AuditLogRepository = (*AuditLogRepository)(nil)
