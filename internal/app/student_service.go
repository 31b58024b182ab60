package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/alunos/internal/core/abbrev"
	corestudent "github.com/example/alunos/internal/core/student"
	"github.com/example/alunos/internal/ports/primary"
	"github.com/example/alunos/internal/ports/secondary"
)

// StudentServiceImpl implements the StudentService interface.
type StudentServiceImpl struct {
	studentRepo secondary.StudentRepository
	logger      *slog.Logger
}

// NewStudentService creates a new StudentService with injected dependencies.
// A nil logger discards diagnostics.
func NewStudentService(studentRepo secondary.StudentRepository, logger *slog.Logger) *StudentServiceImpl {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StudentServiceImpl{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// RegisterStudent creates a record under a freshly minted enrollment code.
func (s *StudentServiceImpl) RegisterStudent(ctx context.Context, req primary.RegisterStudentRequest) (*primary.RegisterStudentResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	course := strings.TrimSpace(req.Course)

	emailExists := false
	if email != "" {
		existing, err := s.studentRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		emailExists = existing != nil
	}

	guard := corestudent.CanRegister(corestudent.RegisterContext{
		Name:        name,
		Email:       email,
		Course:      course,
		EmailExists: emailExists,
	})
	if err := guardError(guard); err != nil {
		return nil, err
	}

	abbreviation := abbrev.Resolve(course)
	code, err := s.mintCode(ctx, abbreviation)
	if err != nil {
		return nil, err
	}

	record := &secondary.StudentRecord{
		Code:         code,
		Name:         name,
		Email:        email,
		Course:       course,
		Abbreviation: abbreviation,
	}
	if err := s.studentRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	created, err := s.studentRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created student: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("created student %s vanished", code)
	}

	s.logger.DebugContext(ctx, "student registered", "code", code, "abbreviation", abbreviation)

	return &primary.RegisterStudentResponse{
		Code:    created.Code,
		Student: s.recordToStudent(created),
	}, nil
}

// ListStudents retrieves all live records in insertion order.
func (s *StudentServiceImpl) ListStudents(ctx context.Context) ([]*primary.Student, error) {
	records, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	students := make([]*primary.Student, len(records))
	for i, r := range records {
		students[i] = s.recordToStudent(r)
	}
	return students, nil
}

// FindStudent resolves a key as an exact code first, then as an email.
func (s *StudentServiceImpl) FindStudent(ctx context.Context, key string) (*primary.Student, error) {
	record, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %q", primary.ErrNotFound, strings.TrimSpace(key))
	}
	return s.recordToStudent(record), nil
}

// UpdateStudent changes a record, optionally moving it under a new code.
// All checks run before any write, so a rejected update leaves the store untouched.
func (s *StudentServiceImpl) UpdateStudent(ctx context.Context, req primary.UpdateStudentRequest) (*primary.UpdateStudentResponse, error) {
	key := strings.TrimSpace(req.Key)
	current, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}

	guardCtx := corestudent.UpdateContext{
		Key:   key,
		Found: current != nil,
	}
	if current != nil {
		guardCtx.Code = current.Code
		guardCtx.Name = keepIfBlank(req.Name, current.Name)
		guardCtx.Email = keepIfBlank(req.Email, current.Email)
		guardCtx.Course = keepIfBlank(req.Course, current.Course)

		if corestudent.NormalizeEmail(guardCtx.Email) != corestudent.NormalizeEmail(current.Email) {
			owner, err := s.studentRepo.GetByEmail(ctx, guardCtx.Email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if owner != nil {
				guardCtx.EmailOwner = owner.Code
			}
		}
	}

	if err := guardError(corestudent.CanUpdate(guardCtx)); err != nil {
		return nil, err
	}

	courseChanged := corestudent.CourseChanged(current.Course, guardCtx.Course)
	if courseChanged && req.RegenerateCode {
		return s.rekey(ctx, current, guardCtx)
	}

	// The abbreviation is kept as registered even if the course changed.
	record := &secondary.StudentRecord{
		Code:         current.Code,
		Name:         guardCtx.Name,
		Email:        guardCtx.Email,
		Course:       guardCtx.Course,
		Abbreviation: current.Abbreviation,
	}
	if err := s.studentRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	updated, err := s.studentRepo.GetByCode(ctx, current.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated student: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("updated student %s vanished", current.Code)
	}

	return &primary.UpdateStudentResponse{
		Code:          updated.Code,
		PreviousCode:  current.Code,
		CourseChanged: courseChanged,
		Student:       s.recordToStudent(updated),
	}, nil
}

// RemoveStudent deletes the record matched by code or email.
func (s *StudentServiceImpl) RemoveStudent(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	record, err := s.lookup(ctx, key)
	if err != nil {
		return err
	}

	guard := corestudent.CanRemove(corestudent.RemoveContext{
		Key:   key,
		Found: record != nil,
	})
	if err := guardError(guard); err != nil {
		return err
	}

	if err := s.studentRepo.Delete(ctx, record.Code); err != nil {
		return fmt.Errorf("failed to remove student: %w", err)
	}

	s.logger.DebugContext(ctx, "student removed", "code", record.Code)
	return nil
}

// Helper methods

func (s *StudentServiceImpl) rekey(ctx context.Context, current *secondary.StudentRecord, fields corestudent.UpdateContext) (*primary.UpdateStudentResponse, error) {
	abbreviation := abbrev.Resolve(fields.Course)
	code, err := s.mintCode(ctx, abbreviation)
	if err != nil {
		return nil, err
	}

	record := &secondary.StudentRecord{
		Code:         code,
		Name:         fields.Name,
		Email:        fields.Email,
		Course:       fields.Course,
		Abbreviation: abbreviation,
	}
	if err := s.studentRepo.Rekey(ctx, current.Code, record); err != nil {
		return nil, fmt.Errorf("failed to move student %s to %s: %w", current.Code, code, err)
	}

	moved, err := s.studentRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated student: %w", err)
	}
	if moved == nil {
		return nil, fmt.Errorf("updated student %s vanished", code)
	}

	s.logger.DebugContext(ctx, "student rekeyed", "from", current.Code, "to", code)

	return &primary.UpdateStudentResponse{
		Code:          code,
		PreviousCode:  current.Code,
		Rekeyed:       true,
		CourseChanged: true,
		Student:       s.recordToStudent(moved),
	}, nil
}

// mintCode claims the next sequence number for the abbreviation.
func (s *StudentServiceImpl) mintCode(ctx context.Context, abbreviation string) (string, error) {
	seq, err := s.studentRepo.NextSequence(ctx, abbreviation)
	if err != nil {
		return "", fmt.Errorf("failed to generate enrollment code: %w", err)
	}
	return corestudent.GenerateEnrollmentCode(abbreviation, seq), nil
}

// lookup returns the record for an exact code, else for a matching email.
// A nil record with nil error means nothing matched.
func (s *StudentServiceImpl) lookup(ctx context.Context, key string) (*secondary.StudentRecord, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}

	record, err := s.studentRepo.GetByCode(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if record != nil {
		return record, nil
	}

	record, err = s.studentRepo.GetByEmail(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get student by email: %w", err)
	}
	return record, nil
}

func (s *StudentServiceImpl) recordToStudent(r *secondary.StudentRecord) *primary.Student {
	return &primary.Student{
		Code:         r.Code,
		Name:         r.Name,
		Email:        r.Email,
		Course:       r.Course,
		Abbreviation: r.Abbreviation,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// keepIfBlank returns the trimmed proposal, or current when it is absent or blank.
func keepIfBlank(proposed *string, current string) string {
	if proposed == nil {
		return current
	}
	if v := strings.TrimSpace(*proposed); v != "" {
		return v
	}
	return current
}

// guardError maps a refused guard onto the matching error kind.
func guardError(r corestudent.GuardResult) error {
	if r.Allowed {
		return nil
	}
	switch r.Violation {
	case corestudent.ViolationRequired:
		return fmt.Errorf("%w: %s", primary.ErrValidation, r.Reason)
	case corestudent.ViolationDuplicateEmail:
		return fmt.Errorf("%w: %s", primary.ErrDuplicateEmail, r.Reason)
	case corestudent.ViolationNotFound:
		return fmt.Errorf("%w: %s", primary.ErrNotFound, r.Reason)
	default:
		return r.Error()
	}
}

// Ensure StudentServiceImpl implements the interface.
var _ primary.StudentService = (*StudentServiceImpl)(nil)
