package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/alunos/internal/ports/primary"
)

// printHistory prints the session audit trail, oldest first.
func printHistory(out io.Writer, entries []*primary.LogEntry) {
	fmt.Fprintln(out)
	titleColor.Fprintln(out, "=== Histórico da Sessão ===")

	if len(entries) == 0 {
		fmt.Fprintln(out, "Nenhuma alteração registrada.")
		return
	}

	for _, entry := range entries {
		printLogEntry(out, entry)
	}
}

func printLogEntry(out io.Writer, entry *primary.LogEntry) {
	// Format: timestamp | action | entity_type/entity_id | field changes
	fmt.Fprintf(out, "%s | %s %-6s | %s/%s",
		entry.CreatedAt,
		getActionIcon(entry.Action),
		entry.Action,
		entry.EntityType,
		entry.EntityID,
	)

	if entry.Action == "update" && entry.FieldName != "" {
		fmt.Fprintf(out, " | %s: %s -> %s", entry.FieldName, entry.OldValue, entry.NewValue)
	}

	fmt.Fprintln(out)
}

func getActionIcon(action string) string {
	switch action {
	case "create":
		return color.New(color.FgGreen).Sprint("+")
	case "update":
		return color.New(color.FgYellow).Sprint("~")
	case "delete":
		return color.New(color.FgRed).Sprint("-")
	default:
		return "?"
	}
}
