// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"flsorter/internal/group"
	"flsorter/internal/tui"

	"github.com/spf13/cobra"
)

// listCmd shows the defined plugin groups and the plugins of a chosen one.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List plugin groups and inspect their plugins",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	byLabel := make(map[string]group.PluginGroup)
	for _, reg := range cfg.Registries() {
		label := strings.ToUpper(reg.Category().DisplayName())
		for _, g := range reg.Groups() {
			byLabel[fmt.Sprintf("%s (%s)", g.Name, label)] = g
		}
	}

	if len(byLabel) == 0 {
		fmt.Println(ErrorStyle.Render("There are no plugin groups defined"))
		return nil
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	choice, err := tui.Select("Select a plugin group, type to search", labels, tui.DefaultConfig())
	if errors.Is(err, tui.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	g := byLabel[choice]
	fmt.Println(HighlightStyle.Render(g.Name))
	fmt.Println()
	fmt.Println(TitleStyle.Render("Plugins"))
	for _, plugin := range g.Plugins {
		fmt.Println(SuccessStyle.Render(plugin))
	}

	return nil
}
