package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/alunos/internal/config"
	"github.com/example/alunos/internal/ctxutil"
	"github.com/example/alunos/internal/ports/primary"
	"github.com/example/alunos/internal/version"
	"github.com/example/alunos/internal/wire"
)

// RootCmd returns the alunos command, which runs the interactive registry.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alunos",
		Short:   "Cadastro de alunos em memória",
		Version: version.String(),
		Long: `alunos is an interactive student registry. Records live only for the
duration of the session; nothing is written to disk.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSessionConfig(cmd)
			if err != nil {
				return err
			}
			return runSession(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().Bool("no-pause", false, "Do not wait for ENTER after each operation")
	cmd.Flags().Bool("history", false, "Print the session history on exit")
	cmd.Flags().Bool("demo", false, "Start with a few demo students")
	cmd.Flags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("config", "", "Path to config file (default .alunos/config.json)")

	cmd.AddCommand(InitCmd())
	cmd.AddCommand(DoctorCmd())

	return cmd
}

// InitCmd writes a default config file to the current directory.
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create .alunos/config.json with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}

			path := config.Path(cwd)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.SaveConfig(cwd, config.Default()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}

// loadSessionConfig merges the config file, environment and flags, in
// increasing order of precedence.
func loadSessionConfig(cmd *cobra.Command) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	var cfg *config.Config
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.LoadConfig(cwd)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(cwd); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	for name, dst := range map[string]*bool{
		"no-color": &cfg.NoColor,
		"no-pause": &cfg.NoPause,
		"history":  &cfg.History,
		"demo":     &cfg.Demo,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetBool(name)
		}
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	return cfg, nil
}

// runSession wires a fresh registry and drives the menu until exit.
func runSession(parent context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer) error {
	if parent == nil {
		parent = context.Background()
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	if cfg.NoColor {
		color.NoColor = true
	}

	a, err := wire.NewApp(wire.Options{Logger: logger, Demo: cfg.Demo})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = ctxutil.WithSessionID(ctx, a.SessionID)

	session := NewSession(a.StudentAdapter(out), SessionOptions{
		In:     in,
		Out:    out,
		Pause:  !cfg.NoPause,
		Logger: logger,
	})
	if err := session.Run(ctx); err != nil {
		return err
	}

	if cfg.History {
		// The session context may already be cancelled by Ctrl-C.
		entries, err := a.LogService.ListLogs(context.WithoutCancel(ctx), primary.LogFilters{SessionID: a.SessionID})
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		printHistory(out, entries)
	}

	return nil
}
