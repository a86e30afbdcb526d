package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/venvr/venvr/internal/config"
	"github.com/venvr/venvr/internal/procutil"
	"github.com/venvr/venvr/internal/registry"
	"github.com/venvr/venvr/internal/state"
)

var execCmd = &cobra.Command{
	Use:   "exec NAME COMMAND [ARGS...]",
	Short: "Run a command inside a virtual environment",
	Long: `Run the given command inside the named virtual environment.

The environment's bin directory is prepended to PATH (equivalent to
activating it) and the command runs as a child process with stdin, stdout
and stderr attached. Venvr exits with the child's exit code; SIGINT and
SIGTERM are forwarded to the child.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)

	// Flags after NAME belong to the command being run, not to venvr.
	execCmd.Flags().SetInterspersed(false)
}

func runExec(cmd *cobra.Command, args []string) error {
	name := args[0]
	argv := args[1:]

	merged, err := loadConfig(config.FlagOverrides{})
	if err != nil {
		return err
	}

	reg := registry.New(merged.EnvironmentsDir)
	path, err := reg.Resolve(name)
	if err != nil {
		return err
	}

	withJournal(func(db *state.DB) error {
		return db.TouchEnvironment(name, time.Now())
	})

	code, err := procutil.Run(cmd.Context(), argv, registry.Environ(path, os.Environ()))
	if err != nil {
		return err
	}
	if code != 0 {
		return &procutil.ExitError{Code: code}
	}
	return nil
}
