package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	cliadapter "github.com/example/alunos/internal/adapters/cli"
	corestudent "github.com/example/alunos/internal/core/student"
	"github.com/example/alunos/internal/ports/primary"
)

var (
	titleColor  = color.New(color.Bold)
	noticeColor = color.New(color.FgYellow)
)

// Session runs the interactive registry menu over a line-oriented terminal.
type Session struct {
	adapter *cliadapter.StudentAdapter
	out     io.Writer
	lines   <-chan string
	pause   bool
	logger  *slog.Logger
}

// SessionOptions configures a Session.
type SessionOptions struct {
	In     io.Reader
	Out    io.Writer
	Pause  bool // wait for ENTER after each operation
	Logger *slog.Logger
}

// NewSession creates a session that reads answers from opts.In.
// Input is consumed by a background goroutine so a pending prompt can be
// abandoned when the context is cancelled.
func NewSession(adapter *cliadapter.StudentAdapter, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		adapter: adapter,
		out:     opts.Out,
		lines:   readLines(opts.In),
		pause:   opts.Pause,
		logger:  logger,
	}
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
// Registry errors are printed and never end the session.
func (s *Session) Run(ctx context.Context) error {
	for {
		s.printMenu()

		option, err := s.prompt(ctx, "Escolha uma opção: ")
		if err != nil {
			return s.finish(err)
		}

		switch option {
		case "1":
			err = s.register(ctx)
		case "2":
			err = s.list(ctx)
		case "3":
			err = s.update(ctx)
		case "4":
			err = s.remove(ctx)
		case "5":
			fmt.Fprintln(s.out, "Saindo...")
			return nil
		default:
			noticeColor.Fprintln(s.out, "Opção inválida. Tente novamente.")
		}
		if err != nil {
			return s.finish(err)
		}

		if err := s.waitForEnter(ctx); err != nil {
			return s.finish(err)
		}
	}
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out)
	titleColor.Fprintln(s.out, "Menu de Opções")
	fmt.Fprintln(s.out, "1. Cadastrar Aluno")
	fmt.Fprintln(s.out, "2. Listar Alunos")
	fmt.Fprintln(s.out, "3. Atualizar Aluno")
	fmt.Fprintln(s.out, "4. Remover Aluno")
	fmt.Fprintln(s.out, "5. Sair")
}

func (s *Session) register(ctx context.Context) error {
	s.printTitle("Cadastrar Aluno")

	name, err := s.prompt(ctx, "Nome: ")
	if err != nil {
		return err
	}
	email, err := s.prompt(ctx, "E-mail: ")
	if err != nil {
		return err
	}
	course, err := s.prompt(ctx, "Curso (ex.: 'Engenharia de Software - GES' ou 'GES'): ")
	if err != nil {
		return err
	}

	if _, err := s.adapter.Register(ctx, name, email, course); err != nil {
		s.report(ctx, "register", err)
	}
	return nil
}

func (s *Session) list(ctx context.Context) error {
	s.printTitle("Lista de Alunos")

	if _, err := s.adapter.List(ctx); err != nil {
		s.report(ctx, "list", err)
	}
	return nil
}

func (s *Session) update(ctx context.Context) error {
	s.printTitle("Atualizar Aluno")

	key, err := s.prompt(ctx, "Informe a matrícula OU e-mail do aluno: ")
	if err != nil {
		return err
	}

	current, err := s.adapter.Find(ctx, key)
	if err != nil {
		s.report(ctx, "update", err)
		return nil
	}

	fmt.Fprintln(s.out, "Deixe em branco para manter o valor atual.")
	name, err := s.prompt(ctx, fmt.Sprintf("Novo nome [%s]: ", current.Name))
	if err != nil {
		return err
	}
	email, err := s.prompt(ctx, fmt.Sprintf("Novo e-mail [%s]: ", current.Email))
	if err != nil {
		return err
	}
	course, err := s.prompt(ctx, fmt.Sprintf("Novo curso [%s]: ", current.Course))
	if err != nil {
		return err
	}

	req := primary.UpdateStudentRequest{
		Key:    current.Code,
		Name:   optional(name),
		Email:  optional(email),
		Course: optional(course),
	}

	if course != "" && corestudent.CourseChanged(current.Course, course) {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "O curso foi alterado. A matrícula segue o padrão <ABREV><N>.")
		answer, err := s.prompt(ctx, "Deseja gerar uma NOVA matrícula para o novo curso? (s/N): ")
		if err != nil {
			return err
		}
		req.RegenerateCode = strings.ToLower(answer) == "s"
	}

	if _, err := s.adapter.Update(ctx, req); err != nil {
		s.report(ctx, "update", err)
	}
	return nil
}

func (s *Session) remove(ctx context.Context) error {
	s.printTitle("Remover Aluno")

	key, err := s.prompt(ctx, "Informe a matrícula OU e-mail do aluno a remover: ")
	if err != nil {
		return err
	}

	if err := s.adapter.Remove(ctx, key); err != nil {
		s.report(ctx, "remove", err)
	}
	return nil
}

func (s *Session) printTitle(title string) {
	fmt.Fprintln(s.out)
	titleColor.Fprintf(s.out, "=== %s ===\n", title)
}

// report prints a failed operation; unexpected errors are also logged.
func (s *Session) report(ctx context.Context, op string, err error) {
	if !s.adapter.ReportError(err) {
		s.logger.ErrorContext(ctx, "operation failed", "op", op, "error", err)
	}
}

func (s *Session) waitForEnter(ctx context.Context) error {
	if !s.pause {
		return nil
	}
	_, err := s.prompt(ctx, "\nPressione ENTER para continuar...")
	return err
}

// prompt prints label and returns the next trimmed input line.
// It returns io.EOF when input is exhausted and ctx.Err() on cancellation.
func (s *Session) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(s.out, label)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// finish turns the reason a session stopped into its exit outcome.
func (s *Session) finish(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "Saindo...")
		return nil
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "Encerrado pelo usuário.")
		return nil
	default:
		return err
	}
}

// readLines streams lines from r until EOF or a read error.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// optional maps a blank answer to "keep current value".
func optional(answer string) *string {
	if answer == "" {
		return nil
	}
	return &answer
}
