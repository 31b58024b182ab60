package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/alunos/internal/ports/primary"
)

// Table layout for the student listing.
const (
	codeWidth  = 8
	nameWidth  = 25
	emailWidth = 30
	ruleWidth  = 85
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	headerColor  = color.New(color.Bold)
	codeColor    = color.New(color.FgHiBlue)
)

// StudentAdapter is a thin adapter that translates menu operations to StudentService calls
// and renders their outcome as human-readable lines.
type StudentAdapter struct {
	service primary.StudentService
	out     io.Writer
}

// NewStudentAdapter creates a new StudentAdapter with the given service.
func NewStudentAdapter(service primary.StudentService, out io.Writer) *StudentAdapter {
	return &StudentAdapter{
		service: service,
		out:     out,
	}
}

// Register registers a student and prints the minted enrollment code.
func (a *StudentAdapter) Register(ctx context.Context, name, email, course string) (*primary.RegisterStudentResponse, error) {
	resp, err := a.service.RegisterStudent(ctx, primary.RegisterStudentRequest{
		Name:   name,
		Email:  email,
		Course: course,
	})
	if err != nil {
		return nil, err
	}

	successColor.Fprint(a.out, "Aluno cadastrado com sucesso!")
	fmt.Fprintf(a.out, " Matrícula: %s\n", codeColor.Sprint(resp.Code))
	return resp, nil
}

// List prints all students as a fixed-width table.
// An empty registry prints a message instead of an empty table.
func (a *StudentAdapter) List(ctx context.Context) ([]*primary.Student, error) {
	students, err := a.service.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	if len(students) == 0 {
		fmt.Fprintln(a.out, "Nenhum aluno cadastrado.")
		return students, nil
	}

	headerColor.Fprintln(a.out, formatRow("Matr.", "Nome", "E-mail", "Curso"))
	fmt.Fprintln(a.out, strings.Repeat("-", ruleWidth))
	for _, s := range students {
		fmt.Fprintln(a.out, formatRow(s.Code, s.Name, s.Email, s.Course))
	}

	return students, nil
}

// Find resolves a code or email without printing anything.
func (a *StudentAdapter) Find(ctx context.Context, key string) (*primary.Student, error) {
	return a.service.FindStudent(ctx, key)
}

// Update applies an update and prints the outcome.
func (a *StudentAdapter) Update(ctx context.Context, req primary.UpdateStudentRequest) (*primary.UpdateStudentResponse, error) {
	resp, err := a.service.UpdateStudent(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.Rekeyed {
		successColor.Fprint(a.out, "Aluno atualizado com sucesso!")
		fmt.Fprintf(a.out, " Nova matrícula: %s\n", codeColor.Sprint(resp.Code))
		return resp, nil
	}

	if resp.CourseChanged {
		fmt.Fprintln(a.out, "Mantendo a matrícula antiga.")
	}
	successColor.Fprintln(a.out, "Aluno atualizado com sucesso!")
	return resp, nil
}

// Remove deletes the student matched by code or email and prints the outcome.
func (a *StudentAdapter) Remove(ctx context.Context, key string) error {
	if err := a.service.RemoveStudent(ctx, key); err != nil {
		return err
	}

	successColor.Fprintln(a.out, "Aluno removido com sucesso!")
	return nil
}

// ReportError prints the message for a failed operation.
// It returns false when err is not one of the registry error kinds.
func (a *StudentAdapter) ReportError(err error) bool {
	switch {
	case errors.Is(err, primary.ErrValidation):
		errorColor.Fprintln(a.out, "Erro: todos os campos são obrigatórios.")
	case errors.Is(err, primary.ErrDuplicateEmail):
		errorColor.Fprintln(a.out, "Erro: já existe um aluno cadastrado com esse e-mail.")
	case errors.Is(err, primary.ErrNotFound):
		fmt.Fprintln(a.out, "Aluno não encontrado.")
	default:
		errorColor.Fprintf(a.out, "Erro: %v\n", err)
		return false
	}
	return true
}

func formatRow(code, name, email, course string) string {
	return fmt.Sprintf("%-*s | %-*s | %-*s | %s", codeWidth, code, nameWidth, name, emailWidth, email, course)
}
