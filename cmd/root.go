package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/venvr/venvr/internal/backend"
	"github.com/venvr/venvr/internal/config"
	"github.com/venvr/venvr/internal/procutil"
	"github.com/venvr/venvr/internal/registry"
	"github.com/venvr/venvr/internal/state"
)

var (
	// Version is set at build time
	Version = "dev"

	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "venvr",
	Short: "Manage named Python virtual environments",
	Long: `Venvr manages named Python virtual environments. Each environment is an
isolated interpreter and library set living under a per-user base directory,
created through an isolation backend (python -m venv or virtualenv) and
addressed by name instead of by path.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Exit codes reported by venvr itself. exec reports the child's own exit
// code instead, or 127 when the command cannot be found.
const (
	exitFailure = 1 // not found, already exists, invalid usage
	exitBackend = 2 // backend invocation or filesystem failure
	exitNoCmd   = 127
)

// Execute runs the root command and exits the process with a code derived
// from the error chain.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var childErr *procutil.ExitError
		if !errors.As(err, &childErr) {
			// A child's failure is its own to report; everything else is ours.
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error chain to a process exit code.
func exitCode(err error) int {
	var childErr *procutil.ExitError
	var invErr *backend.InvocationError
	var ioErr *registry.IOError

	switch {
	case errors.As(err, &childErr):
		return childErr.Code
	case errors.Is(err, procutil.ErrCommandNotFound):
		return exitNoCmd
	case errors.As(err, &invErr), errors.As(err, &ioErr):
		return exitBackend
	default:
		return exitFailure
	}
}

// loadConfig resolves the effective configuration for a command.
func loadConfig(flags config.FlagOverrides) (config.Merged, error) {
	cfg, err := config.Load("")
	if err != nil {
		return config.Merged{}, fmt.Errorf("failed to load config: %w", err)
	}
	return config.Merge(cfg, flags)
}

// withJournal runs fn against the metadata journal, reporting failures as
// warnings. The journal is advisory and never fails a command.
func withJournal(fn func(db *state.DB) error) {
	db, err := state.Open("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: journal unavailable: %v\n", err)
		return
	}
	defer db.Close()

	if err := fn(db); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
