// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"

	"flsorter/internal/sorter"

	"github.com/spf13/cobra"
)

// unsortCmd removes the folders and shim files a previous sort created.
var unsortCmd = &cobra.Command{
	Use:   "unsort",
	Short: "Remove sorted plugin files from the plugin database",
	Long: `Remove sorted plugin files from the plugin database.

For each plugin group the shim files referenced by its current definition are
deleted from the group's database folder, and the folder itself is removed if
that leaves it empty. Files flsorter did not create are never touched.`,
	RunE: runUnsort,
}

func runUnsort(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine := sorter.New(cfg.Database)
	for _, reg := range cfg.Registries() {
		result, err := engine.Unsort(reg)
		if err != nil {
			return err
		}
		fmt.Print(renderUnsortResult(result))
	}

	return nil
}
