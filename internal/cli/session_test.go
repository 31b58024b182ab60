package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/example/alunos/internal/config"
	"github.com/example/alunos/internal/ctxutil"
	"github.com/example/alunos/internal/wire"
)

func init() {
	color.NoColor = true
}

// runScript drives a session over a fresh registry with the given input.
func runScript(t *testing.T, script string, pause bool) (*wire.App, string) {
	t.Helper()

	a, err := wire.NewApp(wire.Options{})
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	var out bytes.Buffer
	ctx := ctxutil.WithSessionID(context.Background(), a.SessionID)
	session := NewSession(a.StudentAdapter(&out), SessionOptions{
		In:    strings.NewReader(script),
		Out:   &out,
		Pause: pause,
	})
	if err := session.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return a, out.String()
}

func assertContains(t *testing.T, output string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, output)
		}
	}
}

func TestSession_FullFlow(t *testing.T) {
	script := strings.Join([]string{
		"1", "Ana", "ana@example.com", "Ciência da Computação",
		"1", "Bia", "bia@example.com", "GES",
		"2",
		"3", "ana@example.com", "", "", "Engenharia de Software - GES", "s",
		"4", "GES1",
		"9",
		"5",
	}, "\n") + "\n"

	a, output := runScript(t, script, false)

	assertContains(t, output,
		"Aluno cadastrado com sucesso! Matrícula: CIE1",
		"Aluno cadastrado com sucesso! Matrícula: GES1",
		"Matr.    | Nome",
		"Deseja gerar uma NOVA matrícula para o novo curso? (s/N): ",
		"Aluno atualizado com sucesso! Nova matrícula: GES2",
		"Aluno removido com sucesso!",
		"Opção inválida. Tente novamente.",
		"Saindo...",
	)

	students, err := a.StudentService.ListStudents(context.Background())
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if len(students) != 1 || students[0].Code != "GES2" {
		t.Fatalf("expected only GES2 to remain, got %+v", students)
	}
	if students[0].Name != "Ana" || students[0].Email != "ana@example.com" {
		t.Errorf("blank answers should keep values, got %+v", students[0])
	}
}

func TestSession_CourseChangeKeepsCode(t *testing.T) {
	script := "1\nAna\nana@example.com\nCIE\n" +
		"3\nCIE1\n\n\nGES\n\n" +
		"5\n"

	a, output := runScript(t, script, false)

	assertContains(t, output, "Mantendo a matrícula antiga.", "Aluno atualizado com sucesso!")
	if strings.Contains(output, "Nova matrícula") {
		t.Error("did not expect a new code")
	}

	student, err := a.StudentService.FindStudent(context.Background(), "CIE1")
	if err != nil {
		t.Fatalf("FindStudent failed: %v", err)
	}
	if student.Course != "GES" {
		t.Errorf("expected course GES, got %q", student.Course)
	}
}

func TestSession_UnchangedCourseSkipsQuestion(t *testing.T) {
	script := "1\nAna\nana@example.com\nGES\n" +
		"3\nGES1\nAna Maria\n\n  GES  \n" +
		"5\n"

	_, output := runScript(t, script, false)

	if strings.Contains(output, "(s/N)") {
		t.Error("course did not change; regeneration should not be offered")
	}
	assertContains(t, output, "Aluno atualizado com sucesso!")
}

func TestSession_Errors(t *testing.T) {
	script := "1\nAna\n\nGES\n" +
		"1\nAna\nana@example.com\nGES\n" +
		"1\nOutra\nANA@example.com\nCIE\n" +
		"3\nninguem@example.com\n" +
		"4\nXYZ9\n" +
		"5\n"

	a, output := runScript(t, script, false)

	assertContains(t, output,
		"Erro: todos os campos são obrigatórios.",
		"Erro: já existe um aluno cadastrado com esse e-mail.",
		"Aluno não encontrado.",
	)
	if strings.Contains(output, "Novo nome") {
		t.Error("update prompts should not be shown for an unknown student")
	}

	students, _ := a.StudentService.ListStudents(context.Background())
	if len(students) != 1 {
		t.Errorf("expected 1 student, got %d", len(students))
	}
}

func TestSession_EOFEndsSession(t *testing.T) {
	a, output := runScript(t, "1\nAna\n", false)

	assertContains(t, output, "Saindo...")

	students, _ := a.StudentService.ListStudents(context.Background())
	if len(students) != 0 {
		t.Errorf("interrupted registration should not be stored, got %d", len(students))
	}
}

func TestSession_PauseWaitsForEnter(t *testing.T) {
	_, output := runScript(t, "2\n\n5\n", true)

	assertContains(t, output, "Nenhum aluno cadastrado.", "Pressione ENTER para continuar...", "Saindo...")
}

func TestSession_CancelledContext(t *testing.T) {
	a, err := wire.NewApp(wire.Options{})
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	defer a.Close()

	// A pipe that never delivers a line keeps the prompt waiting.
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	session := NewSession(a.StudentAdapter(&out), SessionOptions{In: pr, Out: &out})
	if err := session.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	assertContains(t, out.String(), "Encerrado pelo usuário.")
}

func TestRunSession_History(t *testing.T) {
	cfg := config.Default()
	cfg.NoColor = true
	cfg.NoPause = true
	cfg.History = true

	var out, errOut bytes.Buffer
	in := strings.NewReader("1\nAna\nana@example.com\nCIE\n4\nCIE1\n5\n")
	if err := runSession(context.Background(), cfg, in, &out, &errOut); err != nil {
		t.Fatalf("runSession failed: %v", err)
	}

	assertContains(t, out.String(),
		"=== Histórico da Sessão ===",
		"+ create | student/CIE1",
		"- delete | student/CIE1",
	)
}

func TestRunSession_InvalidLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "loud"

	var out, errOut bytes.Buffer
	err := runSession(context.Background(), cfg, strings.NewReader(""), &out, &errOut)
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
}
