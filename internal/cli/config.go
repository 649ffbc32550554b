// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"path/filepath"

	"flsorter/internal/config"
	"flsorter/internal/group"

	"github.com/spf13/cobra"
)

// configCmd groups the configuration inspection subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect flsorter configuration",
	Long: `Inspect flsorter configuration.

Configuration is stored in:
  - Linux: ~/.config/flsorter/config.toml
  - macOS: ~/Library/Application Support/flsorter/config.toml
  - Windows: %APPDATA%\flsorter\config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})
}

func showConfig() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()
	fmt.Printf("%s: %s\n", HighlightStyle.Render("Config directory"), cfg.Dir)
	fmt.Printf("%s: %s\n", HighlightStyle.Render("plugin_database_path"), SuccessStyle.Render(cfg.User.PluginDatabasePath))
	fmt.Println()

	for _, category := range group.Categories() {
		reg := cfg.Registry(category)
		fmt.Printf("%s: %d group%s\n",
			HighlightStyle.Render(category.DisplayName()+" groups"),
			reg.Len(), pluralize(reg.Len()))
	}

	return nil
}

func showConfigPath() error {
	dir := cfgDir
	if dir == "" {
		var err error
		dir, err = config.ConfigDir()
		if err != nil {
			return err
		}
	}

	fmt.Println(filepath.Join(dir, config.ConfigFileName))
	return nil
}
