// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// StudentRepository defines the secondary port for student registry persistence.
// It owns both the records and the per-abbreviation sequence counters.
type StudentRepository interface {
	// Create persists a new student record.
	Create(ctx context.Context, student *StudentRecord) error

	// GetByCode retrieves a record by exact enrollment code (nil if none).
	GetByCode(ctx context.Context, code string) (*StudentRecord, error)

	// GetByEmail retrieves a record by case-insensitive email (nil if none).
	GetByEmail(ctx context.Context, email string) (*StudentRecord, error)

	// List retrieves all records in insertion order.
	List(ctx context.Context) ([]*StudentRecord, error)

	// Update overwrites name, email and course of the record with the same code.
	Update(ctx context.Context, student *StudentRecord) error

	// Rekey atomically removes oldCode and inserts student under its new code.
	Rekey(ctx context.Context, oldCode string, student *StudentRecord) error

	// Delete removes a record from persistence.
	Delete(ctx context.Context, code string) error

	// NextSequence claims the next sequence number for an abbreviation.
	// Numbers start at 1 and are never handed out twice.
	NextSequence(ctx context.Context, abbreviation string) (int, error)
}

// StudentRecord represents a student as stored in persistence.
type StudentRecord struct {
	Code         string
	Name         string
	Email        string
	Course       string
	Abbreviation string
	CreatedAt    string
	UpdatedAt    string
}

// AuditLogRepository defines the secondary port for audit trail persistence.
// Logs are immutable - no Update or Delete operations.
type AuditLogRepository interface {
	// Create persists a new audit log entry.
	Create(ctx context.Context, log *AuditLogRecord) error

	// List retrieves log entries matching the given filters, oldest first.
	List(ctx context.Context, filters AuditLogFilters) ([]*AuditLogRecord, error)

	// GetNextID returns the next available log ID.
	GetNextID(ctx context.Context) (string, error)
}

// AuditLogRecord represents an audit log entry as stored in persistence.
type AuditLogRecord struct {
	ID         string
	SessionID  string // Empty string means null
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', 'delete'
	FieldName  string // Empty string means null - for updates only
	OldValue   string // Empty string means null
	NewValue   string // Empty string means null
	CreatedAt  string
}

// AuditLogFilters contains filter options for querying logs.
type AuditLogFilters struct {
	SessionID  string
	EntityType string
	EntityID   string
	Action     string
	Limit      int
}
