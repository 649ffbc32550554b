// SPDX-License-Identifier: MPL-2.0

// Package config handles the user configuration file and assembles the
// top-level Config every command operates on.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"flsorter/internal/group"
	"flsorter/internal/issue"
	"flsorter/internal/plugindb"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used as the config directory name.
	AppName = "flsorter"
	// ConfigFileName is the user configuration file name.
	ConfigFileName = "config.toml"
)

type (
	// UserConfig is the persisted user configuration. It is created on first
	// run with a platform-specific default and reused afterwards.
	UserConfig struct {
		// PluginDatabasePath is the base path under which the FL Studio
		// plugin database layout is expected to exist.
		PluginDatabasePath string `mapstructure:"plugin_database_path" toml:"plugin_database_path"`
	}

	// LoadOptions controls Load. The zero value uses platform defaults.
	LoadOptions struct {
		// ConfigDir overrides the platform configuration directory
		// (set via the --config flag and by tests).
		ConfigDir string
	}

	// Config is the composition root: the user configuration, the validated
	// plugin database, and one loaded group registry per category. It is
	// constructed once at process start and passed by reference into every
	// command; nothing mutates it concurrently.
	Config struct {
		// Dir is the resolved configuration directory.
		Dir string
		// User is the persisted user configuration.
		User UserConfig
		// Database is the validated plugin database.
		Database *plugindb.Database

		registries map[group.Category]*group.Registry
	}
)

// ConfigDir returns the flsorter configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DefaultDatabasePath returns the stock FL Studio plugin database location
// under the user's documents folder.
func DefaultDatabasePath() (string, error) {
	docs, err := documentsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(docs, "Image-Line", "FL Studio", "Presets", "Plugin database"), nil
}

func documentsDir() (string, error) {
	if runtime.GOOS == "windows" {
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			return filepath.Join(profile, "Documents"), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Documents"), nil
}

// Load resolves the configuration directory, loads (or creates) the user
// configuration, validates the plugin database, and loads the group
// registries for both categories.
func Load(opts LoadOptions) (*Config, error) {
	cfgDir := opts.ConfigDir
	if cfgDir == "" {
		var err error
		cfgDir, err = ConfigDir()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return nil, issue.WrapWithContext(err, "create config directory", cfgDir)
	}

	user, err := loadUserConfig(cfgDir)
	if err != nil {
		return nil, err
	}

	db, err := plugindb.New(user.PluginDatabasePath)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate plugin database").
			WithResource(user.PluginDatabasePath).
			WithSuggestion("Check 'plugin_database_path' in " + filepath.Join(cfgDir, ConfigFileName)).
			WithSuggestion("Run FL Studio once so it creates the plugin database layout").
			Wrap(err).
			BuildError()
	}

	cfg := &Config{
		Dir:        cfgDir,
		User:       user,
		Database:   db,
		registries: make(map[group.Category]*group.Registry),
	}

	for _, category := range group.Categories() {
		dir := filepath.Join(cfgDir, category.DisplayName())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, issue.WrapWithContext(err, "create group directory", dir)
		}

		reg, err := group.LoadRegistry(dir, category)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation(fmt.Sprintf("load %s plugin groups", category.DisplayName())).
				WithResource(dir).
				WithSuggestion("Fix or remove the malformed group definition file").
				Wrap(err).
				BuildError()
		}
		cfg.registries[category] = reg
	}

	return cfg, nil
}

// Registry returns the loaded registry for the given category.
func (c *Config) Registry(category group.Category) *group.Registry {
	return c.registries[category]
}

// Registries returns both registries in category order.
func (c *Config) Registries() []*group.Registry {
	regs := make([]*group.Registry, 0, len(c.registries))
	for _, category := range group.Categories() {
		regs = append(regs, c.registries[category])
	}
	return regs
}

// loadUserConfig reads the user configuration file, creating it with the
// platform default database path on first run.
func loadUserConfig(cfgDir string) (UserConfig, error) {
	path := filepath.Join(cfgDir, ConfigFileName)

	if _, err := os.Stat(path); err == nil {
		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("toml")

		if err := v.ReadInConfig(); err != nil {
			return UserConfig{}, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid TOML").
				Wrap(err).
				BuildError()
		}

		var user UserConfig
		if err := v.Unmarshal(&user); err != nil {
			return UserConfig{}, issue.WrapWithContext(err, "parse configuration", path)
		}

		if strings.TrimSpace(user.PluginDatabasePath) == "" {
			return UserConfig{}, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Set 'plugin_database_path' to the FL Studio plugin database location").
				Wrap(errors.New("plugin_database_path is not set")).
				BuildError()
		}

		return user, nil
	}

	// First run: persist the platform default so later runs reuse it.
	dbPath, err := DefaultDatabasePath()
	if err != nil {
		return UserConfig{}, err
	}

	user := UserConfig{PluginDatabasePath: dbPath}
	data, err := toml.Marshal(user)
	if err != nil {
		return UserConfig{}, fmt.Errorf("failed to serialize default configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return UserConfig{}, issue.WrapWithContext(err, "write default configuration", path)
	}

	return user, nil
}
