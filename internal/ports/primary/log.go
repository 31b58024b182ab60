package primary

import "context"

// LogService defines the primary port for the session audit trail.
type LogService interface {
	// ListLogs retrieves log entries matching the given filters, oldest first.
	ListLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, error)
}

// LogEntry represents an audit log entry at the port boundary.
type LogEntry struct {
	ID         string
	SessionID  string
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', 'delete'
	FieldName  string // For updates only
	OldValue   string
	NewValue   string
	CreatedAt  string
}

// LogFilters contains filter options for querying logs.
type LogFilters struct {
	SessionID  string
	EntityType string
	EntityID   string
	Action     string
	Limit      int
}
