// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"
	"fmt"

	"flsorter/internal/sorter"

	"github.com/spf13/cobra"
)

// sortCmd copies the shim file of every resolvable plugin of every group
// into the plugin database.
var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort grouped plugins into the plugin database",
	Long: `Sort grouped plugins into the plugin database.

For every non-empty plugin group a folder named after the group is created
under the category's database directory, and the .fst shim of each installed
plugin the group names is copied into it. Plugins that are not installed are
skipped and reported.`,
	RunE: runSort,
}

func runSort(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	total := 0
	for _, reg := range cfg.Registries() {
		total += reg.Len()
	}
	if total == 0 {
		return errors.New("there are no plugin groups to sort")
	}

	engine := sorter.New(cfg.Database)
	for _, reg := range cfg.Registries() {
		if reg.Len() == 0 {
			continue
		}

		result, err := engine.Sort(reg)
		if err != nil {
			return err
		}
		fmt.Print(renderSortResult(result))
	}

	return nil
}
