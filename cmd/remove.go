package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/venvr/venvr/internal/config"
	"github.com/venvr/venvr/internal/registry"
	"github.com/venvr/venvr/internal/state"
)

var removeCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm"},
	Short:   "Remove a virtual environment",
	Long: `Remove the virtual environment with the given name.

The environment's directory tree is deleted recursively. This cannot be
undone.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	merged, err := loadConfig(config.FlagOverrides{})
	if err != nil {
		return err
	}

	reg := registry.New(merged.EnvironmentsDir)
	if err := reg.Remove(name); err != nil {
		return err
	}

	withJournal(func(db *state.DB) error {
		err := db.DeleteEnvironment(name)
		if errors.Is(err, state.ErrEnvironmentNotFound) {
			// Created before the journal existed; nothing to clean up.
			return nil
		}
		return err
	})

	fmt.Printf("Removed %s\n", name)
	return nil
}
