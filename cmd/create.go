package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/venvr/venvr/internal/backend"
	_ "github.com/venvr/venvr/internal/backend/venv"       // Register venv backend
	_ "github.com/venvr/venvr/internal/backend/virtualenv" // Register virtualenv backend
	"github.com/venvr/venvr/internal/config"
	"github.com/venvr/venvr/internal/registry"
	"github.com/venvr/venvr/internal/state"
)

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new virtual environment",
	Long: `Create a new virtual environment with the given name.

The environment is built under the environments directory by the configured
isolation backend (python -m venv by default). Its path is printed on
success for scripting use.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var (
	createBackendFlag    string
	createPythonFlag     string
	createSystemSiteFlag bool
)

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVar(&createBackendFlag, "backend", "", "override default backend")
	createCmd.Flags().StringVar(&createPythonFlag, "python", "", "interpreter to seed the environment with")
	createCmd.Flags().BoolVar(&createSystemSiteFlag, "system-site-packages", false, "give the environment access to system site-packages")
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	merged, err := loadConfig(config.FlagOverrides{
		Backend:            createBackendFlag,
		Python:             createPythonFlag,
		SystemSitePackages: createSystemSiteFlag,
	})
	if err != nil {
		return err
	}

	be, err := backend.Get(merged.Backend)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "creating %s using %s (%s)\n", name, be.Name(), merged.Python)
	}

	reg := registry.New(merged.EnvironmentsDir)
	path, err := reg.Create(cmd.Context(), name, be, backend.CreateOptions{
		Python:             merged.Python,
		SystemSitePackages: merged.SystemSitePackages,
		Prompt:             name,
	})
	if err != nil {
		return err
	}

	withJournal(func(db *state.DB) error {
		return db.CreateEnvironment(&state.Environment{
			Name:      name,
			Backend:   be.Name(),
			Python:    merged.Python,
			Path:      path,
			CreatedAt: time.Now(),
		})
	})

	// Print the path for scripting use.
	fmt.Println(path)
	return nil
}
