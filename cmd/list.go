package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/venvr/venvr/internal/config"
	"github.com/venvr/venvr/internal/pathutil"
	"github.com/venvr/venvr/internal/registry"
	"github.com/venvr/venvr/internal/state"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List virtual environments",
	Long: `List all virtual environments under the environments directory.

The directory tree is the source of truth; backend and interpreter details
come from the metadata journal where available.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	merged, err := loadConfig(config.FlagOverrides{})
	if err != nil {
		return err
	}

	reg := registry.New(merged.EnvironmentsDir)
	names, err := reg.List()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Println("No environments found.")
		return nil
	}

	// Annotate from the journal. Rows whose directory is gone are stale;
	// prune them while we are here, but only for the active base directory
	// so switching VENVR_HOME does not discard another tree's metadata.
	meta := make(map[string]*state.Environment)
	withJournal(func(db *state.DB) error {
		envs, err := db.ListEnvironments()
		if err != nil {
			return err
		}
		for _, env := range envs {
			if pathutil.ExistsAndIsDir(env.Path) {
				meta[env.Name] = env
			} else if filepath.Dir(env.Path) == merged.EnvironmentsDir {
				_ = db.DeleteEnvironment(env.Name)
			}
		}
		return nil
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBACKEND\tPYTHON\tCREATED\tLAST USED")
	for _, name := range names {
		backendName, python, created, lastUsed := "-", "-", "-", "-"
		if env, ok := meta[name]; ok {
			backendName = env.Backend
			if env.Python != "" {
				python = env.Python
			}
			created = env.CreatedAt.Local().Format("2006-01-02 15:04")
			if !env.LastUsedAt.IsZero() {
				lastUsed = env.LastUsedAt.Local().Format("2006-01-02 15:04")
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, backendName, python, created, lastUsed)
	}
	w.Flush()

	return nil
}
