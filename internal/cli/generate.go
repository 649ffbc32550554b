// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"flsorter/internal/group"
	"flsorter/internal/scan"
	"flsorter/internal/tui"

	"github.com/spf13/cobra"
)

var (
	generateName     string
	generateFileName string
	generateRecurse  bool

	// generateCmd builds plugin groups from a folder of plugin binaries.
	generateCmd = &cobra.Command{
		Use:   "generate <folder>",
		Short: "Generate plugin groups from a folder of plugin binaries",
		Long: `Generate plugin groups from a folder of plugin binaries.

The folder is scanned for VST3 bundles and legacy VST DLLs. A multi-select
prompt asks which of the discovered plugins are effects; the remainder are
saved as a generator group under the same name.`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerate,
	}
)

func init() {
	generateCmd.Flags().StringVarP(&generateName, "name", "n", "", "name of the generated plugin group (default: the folder name)")
	generateCmd.Flags().StringVarP(&generateFileName, "file-name", "f", "", "definition file name (default: derived from the folder name)")
	generateCmd.Flags().BoolVar(&generateRecurse, "recurse", false, "include plugins found in subdirectories")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	folder := args[0]
	plugins, err := scan.PluginNames(folder, generateRecurse)
	if err != nil {
		return err
	}
	if len(plugins) == 0 {
		return fmt.Errorf("no plugins found in %s", folder)
	}

	dirName := filepath.Base(filepath.Clean(folder))
	groupName := generateName
	if groupName == "" {
		groupName = dirName
	}
	fileID := generateFileName
	if fileID == "" {
		fileID = group.DefaultFileID(dirName)
	}

	chosen, err := tui.MultiSelectIndexes(
		"Select the plugins that are effects (the rest become generators)",
		plugins, tui.DefaultConfig())
	if errors.Is(err, tui.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	// Split preserving scan order. An empty selection means every plugin is
	// a generator.
	chosenSet := make(map[int]bool, len(chosen))
	for _, i := range chosen {
		chosenSet[i] = true
	}

	var effects, generators []string
	for i, plugin := range plugins {
		if chosenSet[i] {
			effects = append(effects, plugin)
		} else {
			generators = append(generators, plugin)
		}
	}

	if len(effects) > 0 {
		reg := cfg.Registry(group.CategoryEffect)
		if err := reg.Save(fileID, group.NewPluginGroup(groupName, effects)); err != nil {
			return err
		}
		fmt.Print(renderSavedGroup(group.CategoryEffect, len(effects), fileID))
	}

	if len(generators) > 0 {
		reg := cfg.Registry(group.CategoryGenerator)
		if err := reg.Save(fileID, group.NewPluginGroup(groupName, generators)); err != nil {
			return err
		}
		fmt.Print(renderSavedGroup(group.CategoryGenerator, len(generators), fileID))
	}

	return nil
}
