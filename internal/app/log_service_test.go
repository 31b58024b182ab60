package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/alunos/internal/ports/primary"
	"github.com/example/alunos/internal/ports/secondary"
)

// mockAuditLogRepository implements secondary.AuditLogRepository for testing.
type mockAuditLogRepository struct {
	logs        []*secondary.AuditLogRecord
	lastFilters secondary.AuditLogFilters
	listErr     error
}

func (m *mockAuditLogRepository) Create(ctx context.Context, log *secondary.AuditLogRecord) error {
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockAuditLogRepository) List(ctx context.Context, filters secondary.AuditLogFilters) ([]*secondary.AuditLogRecord, error) {
	m.lastFilters = filters
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.logs, nil
}

func (m *mockAuditLogRepository) GetNextID(ctx context.Context) (string, error) {
	return "LOG-001", nil
}

func TestListLogs_Success(t *testing.T) {
	repo := &mockAuditLogRepository{
		logs: []*secondary.AuditLogRecord{
			{ID: "LOG-001", SessionID: "s1", EntityType: "student", EntityID: "GES1", Action: "create"},
			{ID: "LOG-002", SessionID: "s1", EntityType: "student", EntityID: "GES1", Action: "update", FieldName: "name", OldValue: "Ana", NewValue: "Ana Souza"},
		},
	}
	service := NewLogService(repo)

	entries, err := service.ListLogs(context.Background(), primary.LogFilters{SessionID: "s1", Limit: 10})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].FieldName != "name" || entries[1].NewValue != "Ana Souza" {
		t.Errorf("unexpected entry: %+v", entries[1])
	}
	if repo.lastFilters.SessionID != "s1" || repo.lastFilters.Limit != 10 {
		t.Errorf("filters not passed through: %+v", repo.lastFilters)
	}
}

func TestListLogs_Error(t *testing.T) {
	repo := &mockAuditLogRepository{listErr: errors.New("boom")}
	service := NewLogService(repo)

	if _, err := service.ListLogs(context.Background(), primary.LogFilters{}); err == nil {
		t.Fatal("expected error, got nil")
	}
}
