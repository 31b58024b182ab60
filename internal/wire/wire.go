// Package wire provides dependency injection for the registry application.
// Each App owns one private in-memory database; nothing is shared between Apps.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	cliadapter "github.com/example/alunos/internal/adapters/cli"
	"github.com/example/alunos/internal/adapters/sqlite"
	"github.com/example/alunos/internal/app"
	"github.com/example/alunos/internal/db"
	"github.com/example/alunos/internal/ports/primary"
)

// App holds the services for one registry session.
type App struct {
	SessionID      string
	StudentService primary.StudentService
	LogService     primary.LogService

	db     *sql.DB
	logger *slog.Logger
}

// Options configures NewApp.
type Options struct {
	Logger *slog.Logger
	Demo   bool // seed fixture students
}

// NewApp opens a fresh registry and wires repositories and services.
// The registry lives until Close.
func NewApp(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	database, err := db.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if opts.Demo {
		if err := db.SeedFixtures(database); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	logRepo := sqlite.NewAuditLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(logRepo)
	studentRepo := sqlite.NewStudentRepository(database, logWriter)

	a := &App{
		SessionID:      uuid.NewString(),
		StudentService: app.NewStudentService(studentRepo, logger),
		LogService:     app.NewLogService(logRepo),
		db:             database,
		logger:         logger,
	}

	logger.Debug("registry opened", "session", a.SessionID, "demo", opts.Demo)
	return a, nil
}

// StudentAdapter returns a new StudentAdapter writing to out.
// Each call creates a new adapter (adapters are stateless translators).
func (a *App) StudentAdapter(out io.Writer) *cliadapter.StudentAdapter {
	return cliadapter.NewStudentAdapter(a.StudentService, out)
}

// Close discards the registry.
func (a *App) Close() error {
	a.logger.Debug("registry closed", "session", a.SessionID)
	return a.db.Close()
}
