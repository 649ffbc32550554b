// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flsorter/internal/group"
	"flsorter/internal/plugindb"

	"github.com/pelletier/go-toml/v2"
)

// newDatabaseLayout creates a valid plugin database tree and returns its base.
func newDatabaseLayout(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	for _, dir := range []string{
		"Effects",
		"Generators",
		filepath.Join("Installed", "Effects", "VST3"),
		filepath.Join("Installed", "Effects", "VST"),
		filepath.Join("Installed", "Generators", "VST3"),
		filepath.Join("Installed", "Generators", "VST"),
	} {
		if err := os.MkdirAll(filepath.Join(base, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return base
}

// writeUserConfig persists a config.toml pointing at dbPath.
func writeUserConfig(t *testing.T, cfgDir, dbPath string) {
	t.Helper()

	data, err := toml.Marshal(UserConfig{PluginDatabasePath: dbPath})
	if err != nil {
		t.Fatalf("marshal user config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, ConfigFileName), data, 0o644); err != nil {
		t.Fatalf("write user config: %v", err)
	}
}

func TestLoadUserConfigFirstRun(t *testing.T) {
	cfgDir := t.TempDir()

	user, err := loadUserConfig(cfgDir)
	if err != nil {
		t.Fatalf("loadUserConfig() failed: %v", err)
	}

	suffix := filepath.Join("Image-Line", "FL Studio", "Presets", "Plugin database")
	if !strings.HasSuffix(user.PluginDatabasePath, suffix) {
		t.Errorf("default path = %q, want suffix %q", user.PluginDatabasePath, suffix)
	}

	if _, err := os.Stat(filepath.Join(cfgDir, ConfigFileName)); err != nil {
		t.Errorf("config file not created on first run: %v", err)
	}

	// A second load must read the persisted file back unchanged.
	again, err := loadUserConfig(cfgDir)
	if err != nil {
		t.Fatalf("second loadUserConfig() failed: %v", err)
	}
	if again != user {
		t.Errorf("reloaded config %+v differs from created %+v", again, user)
	}
}

func TestLoadUserConfigEmptyPath(t *testing.T) {
	cfgDir := t.TempDir()
	writeUserConfig(t, cfgDir, "   ")

	if _, err := loadUserConfig(cfgDir); err == nil {
		t.Error("expected error for blank plugin_database_path")
	}
}

func TestLoad(t *testing.T) {
	base := newDatabaseLayout(t)
	cfgDir := t.TempDir()
	writeUserConfig(t, cfgDir, base)

	cfg, err := Load(LoadOptions{ConfigDir: cfgDir})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Database.Base() != base {
		t.Errorf("database base = %q, want %q", cfg.Database.Base(), base)
	}

	for _, category := range group.Categories() {
		reg := cfg.Registry(category)
		if reg == nil {
			t.Fatalf("missing registry for %s", category)
		}
		if reg.Len() != 0 {
			t.Errorf("%s registry should start empty, has %d groups", category, reg.Len())
		}
		if _, err := os.Stat(filepath.Join(cfgDir, category.DisplayName())); err != nil {
			t.Errorf("group directory for %s not created: %v", category, err)
		}
	}

	if got := len(cfg.Registries()); got != 2 {
		t.Errorf("Registries() returned %d entries, want 2", got)
	}
}

func TestLoadPicksUpSavedGroups(t *testing.T) {
	base := newDatabaseLayout(t)
	cfgDir := t.TempDir()
	writeUserConfig(t, cfgDir, base)

	effectDir := filepath.Join(cfgDir, "effect")
	if err := os.MkdirAll(effectDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data, err := toml.Marshal(group.NewPluginGroup("Delay", []string{"EchoOne"}))
	if err != nil {
		t.Fatalf("marshal group: %v", err)
	}
	if err := os.WriteFile(filepath.Join(effectDir, "delay.toml"), data, 0o644); err != nil {
		t.Fatalf("write group: %v", err)
	}

	cfg, err := Load(LoadOptions{ConfigDir: cfgDir})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := cfg.Registry(group.CategoryEffect).Len(); got != 1 {
		t.Errorf("effect registry has %d groups, want 1", got)
	}
}

func TestLoadInvalidDatabaseLayout(t *testing.T) {
	cfgDir := t.TempDir()
	writeUserConfig(t, cfgDir, t.TempDir()) // empty dir, not a plugin database

	_, err := Load(LoadOptions{ConfigDir: cfgDir})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, plugindb.ErrInvalidLayout) {
		t.Errorf("expected ErrInvalidLayout in chain, got %v", err)
	}
}

func TestLoadMalformedGroupAbortsLoad(t *testing.T) {
	base := newDatabaseLayout(t)
	cfgDir := t.TempDir()
	writeUserConfig(t, cfgDir, base)

	generatorDir := filepath.Join(cfgDir, "generator")
	if err := os.MkdirAll(generatorDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(generatorDir, "broken.toml"), []byte("= nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Load(LoadOptions{ConfigDir: cfgDir})
	if !errors.Is(err, group.ErrMalformedGroupFile) {
		t.Errorf("expected ErrMalformedGroupFile in chain, got %v", err)
	}
}

func TestDefaultDatabasePath(t *testing.T) {
	path, err := DefaultDatabasePath()
	if err != nil {
		t.Fatalf("DefaultDatabasePath() failed: %v", err)
	}
	if !strings.Contains(path, "Plugin database") {
		t.Errorf("unexpected default path %q", path)
	}
}
