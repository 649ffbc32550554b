// SPDX-License-Identifier: MPL-2.0

// Package scan discovers candidate plugin binaries on disk for group
// creation.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsPluginBinary reports whether the path looks like an installable plugin
// binary (a VST3 bundle or a legacy VST DLL).
func IsPluginBinary(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vst3", ".dll":
		return true
	default:
		return false
	}
}

// PluginNames collects the base names (without extension) of all plugin
// binaries in dir. With recurse set, subdirectories are descended into;
// otherwise only the immediate entries are considered. Names come back in
// the deterministic order of the directory listing.
func PluginNames(dir string, recurse bool) ([]string, error) {
	var names []string
	if err := collect(dir, recurse, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func collect(dir string, recurse bool, names *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read plugin folder %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if recurse {
				if err := collect(path, recurse, names); err != nil {
					return err
				}
			}
			continue
		}

		if !IsPluginBinary(path) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		*names = append(*names, name)
	}

	return nil
}
