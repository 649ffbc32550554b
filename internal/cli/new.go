// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"
	"fmt"

	"flsorter/internal/group"
	"flsorter/internal/tui"

	"github.com/spf13/cobra"
)

var (
	newName     string
	newType     string
	newFileName string

	// newCmd creates a plugin group from the command line.
	newCmd = &cobra.Command{
		Use:   "new <plugin>... --name <name> --type <effect|generator>",
		Short: "Create a new plugin group",
		Long: `Create a new plugin group from a list of plugin names.

If a definition file with the same identifier already exists, a confirmation
prompt asks before overwriting it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runNew,
	}
)

func init() {
	newCmd.Flags().StringVarP(&newName, "name", "n", "", "name of the plugin group")
	newCmd.Flags().StringVarP(&newType, "type", "t", "", "type of the plugin group (effect or generator)")
	newCmd.Flags().StringVarP(&newFileName, "file-name", "f", "", "definition file name (default: derived from the group name)")
	_ = newCmd.MarkFlagRequired("name")
	_ = newCmd.MarkFlagRequired("type")
}

func runNew(cmd *cobra.Command, args []string) error {
	category, err := group.ParseCategory(newType)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg := cfg.Registry(category)

	fileID := newFileName
	if fileID == "" {
		fileID = group.DefaultFileID(newName)
	}

	if reg.Exists(fileID) {
		overwrite, err := tui.Confirm(
			"That plugin group already exists. Do you want to overwrite it?",
			false, tui.DefaultConfig())
		if errors.Is(err, tui.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		if !overwrite {
			return nil
		}
	}

	if err := reg.Save(fileID, group.NewPluginGroup(newName, args)); err != nil {
		return err
	}

	fmt.Print(renderSavedGroup(category, len(args), fileID))
	return nil
}
