package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/alunos/internal/config"
	"github.com/example/alunos/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the alunos environment",
		Long: `Checks that a session can start in the current directory.

Validates:
- .alunos/config.json (or --config) parses
- ALUNOS_* variables and .env are well formed
- The configured log level is known
- The in-memory database opens with its schema

Examples:
  alunos doctor              # Run full health check
  alunos doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.Path(cwd)
			}

			results := runChecks(path, cwd)

			if !quiet {
				printChecks(cmd.OutOrStdout(), results)
			}
			if hasFailures(results) {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// runChecks validates configuration at path and the environment of dir.
func runChecks(path, dir string) []CheckResult {
	cfgResult, cfg := checkConfig(path)
	results := []CheckResult{cfgResult}

	if cfg != nil {
		results = append(results, checkEnv(cfg, dir))
		results = append(results, checkLogLevel(cfg))
	}
	results = append(results, checkDatabase())

	return results
}

func checkConfig(path string) (CheckResult, *config.Config) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}, nil
	}
	if _, err := os.Stat(path); err != nil {
		return CheckResult{
			Name:    "Config",
			Status:  "⚠",
			Details: fmt.Sprintf("  %s not found, using defaults\n  Run: alunos init", path),
		}, cfg
	}
	return CheckResult{Name: "Config", Status: "✓"}, cfg
}

func checkEnv(cfg *config.Config, dir string) CheckResult {
	if err := cfg.ApplyEnv(dir); err != nil {
		return CheckResult{Name: "Environment", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Environment", Status: "✓"}
}

func checkLogLevel(cfg *config.Config) CheckResult {
	if _, err := cfg.SlogLevel(); err != nil {
		return CheckResult{Name: "Log level", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Log level", Status: "✓"}
}

func checkDatabase() CheckResult {
	database, err := db.Open()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	defer database.Close()

	if err := database.Ping(); err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}

func hasFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == "✗" {
			return true
		}
	}
	return false
}

func printChecks(out io.Writer, results []CheckResult) {
	// Print compact table
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Check              Status")
	fmt.Fprintln(out, "─────────────────────────")
	for _, r := range results {
		fmt.Fprintf(out, "%-18s %s\n", r.Name, r.Status)
	}
	fmt.Fprintln(out)

	// Print details for non-passing checks
	hasDetails := false
	for _, r := range results {
		if r.Status != "✓" && r.Details != "" {
			if !hasDetails {
				fmt.Fprintln(out, "Details:")
				hasDetails = true
			}
			fmt.Fprintf(out, "\n%s:\n%s\n", r.Name, r.Details)
		}
	}

	if hasFailures(results) {
		fmt.Fprintln(out, "\n⚠ Issues found.")
	} else {
		fmt.Fprintln(out, "All checks passed.")
	}
}
