package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/alunos/internal/adapters/sqlite"
	"github.com/example/alunos/internal/ctxutil"
	"github.com/example/alunos/internal/ports/secondary"
)

func TestAuditLogRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewAuditLogRepository(db)
	ctx := context.Background()

	first, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if first != "LOG-0001" {
		t.Errorf("expected LOG-0001, got %s", first)
	}

	if err := repo.Create(ctx, &secondary.AuditLogRecord{ID: first, EntityType: "student", EntityID: "GES1", Action: "create"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	second, _ := repo.GetNextID(ctx)
	if second != "LOG-0002" {
		t.Errorf("expected LOG-0002, got %s", second)
	}
}

func TestAuditLogRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewAuditLogRepository(db)
	ctx := context.Background()

	entries := []*secondary.AuditLogRecord{
		{ID: "LOG-0001", SessionID: "s1", EntityType: "student", EntityID: "GES1", Action: "create"},
		{ID: "LOG-0002", SessionID: "s1", EntityType: "student", EntityID: "GES1", Action: "update", FieldName: "name", OldValue: "Ana", NewValue: "Ana Souza"},
		{ID: "LOG-0003", SessionID: "s2", EntityType: "student", EntityID: "ADS1", Action: "create"},
		{ID: "LOG-0004", EntityType: "student", EntityID: "GES1", Action: "delete"},
	}
	for _, e := range entries {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	tests := []struct {
		name    string
		filters secondary.AuditLogFilters
		wantIDs []string
	}{
		{name: "no filters", filters: secondary.AuditLogFilters{}, wantIDs: []string{"LOG-0001", "LOG-0002", "LOG-0003", "LOG-0004"}},
		{name: "by session", filters: secondary.AuditLogFilters{SessionID: "s1"}, wantIDs: []string{"LOG-0001", "LOG-0002"}},
		{name: "by entity", filters: secondary.AuditLogFilters{EntityID: "GES1"}, wantIDs: []string{"LOG-0001", "LOG-0002", "LOG-0004"}},
		{name: "by action", filters: secondary.AuditLogFilters{Action: "create"}, wantIDs: []string{"LOG-0001", "LOG-0003"}},
		{name: "with limit", filters: secondary.AuditLogFilters{Limit: 2}, wantIDs: []string{"LOG-0001", "LOG-0002"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs, err := repo.List(ctx, tt.filters)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(logs) != len(tt.wantIDs) {
				t.Fatalf("expected %d entries, got %d", len(tt.wantIDs), len(logs))
			}
			for i, id := range tt.wantIDs {
				if logs[i].ID != id {
					t.Errorf("entry %d: expected %s, got %s", i, id, logs[i].ID)
				}
			}
		})
	}

	logs, _ := repo.List(ctx, secondary.AuditLogFilters{EntityID: "GES1", Action: "update"})
	if len(logs) != 1 || logs[0].OldValue != "Ana" || logs[0].NewValue != "Ana Souza" {
		t.Errorf("unexpected update entry: %+v", logs)
	}
}

func TestLogWriterAdapter_StampsSession(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewAuditLogRepository(db)
	writer := sqlite.NewLogWriterAdapter(repo)
	ctx := ctxutil.WithSessionID(context.Background(), "session-123")

	if err := writer.LogCreate(ctx, "student", "GES1"); err != nil {
		t.Fatalf("LogCreate failed: %v", err)
	}
	if err := writer.LogDelete(context.Background(), "student", "GES1"); err != nil {
		t.Fatalf("LogDelete failed: %v", err)
	}

	logs, err := repo.List(context.Background(), secondary.AuditLogFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(logs))
	}
	if logs[0].SessionID != "session-123" {
		t.Errorf("expected session-123, got %q", logs[0].SessionID)
	}
	if logs[1].SessionID != "" {
		t.Errorf("expected empty session without session, got %q", logs[1].SessionID)
	}
}
