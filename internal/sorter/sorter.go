// SPDX-License-Identifier: MPL-2.0

// Package sorter implements the sort and unsort reconciliation engines.
//
// Both engines process one category at a time, groups in registry order,
// plugins in group order, strictly sequentially. They return structured
// results for the CLI to render and never print themselves. Filesystem
// failures are fatal and abort the whole operation; an unresolved plugin
// name or an empty group is a counted skip, never an error.
package sorter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"flsorter/internal/group"
	"flsorter/internal/plugindb"
)

type (
	// MissingPlugin identifies a plugin name that did not resolve against
	// the installed index while sorting a group.
	MissingPlugin struct {
		Group  string
		Plugin string
	}

	// Result aggregates one category's sort pass.
	Result struct {
		Category group.Category
		// Plugins is the number of shim files copied.
		Plugins int
		// Folders is the number of non-empty groups attempted, independent
		// of how many of their plugins resolved.
		Folders int
		// SkippedGroups lists groups skipped because they define no plugins.
		SkippedGroups []string
		// Missing lists plugin names that were not installed.
		Missing []MissingPlugin
	}

	// UnsortResult aggregates one category's unsort pass.
	UnsortResult struct {
		Category group.Category
		// Removed is the number of shim files deleted.
		Removed int
		// NoGroups is true when the registry defined no groups at all,
		// which is reported distinctly from zero legitimate removals.
		NoGroups bool
	}

	// Engine reconciles plugin group definitions against a validated plugin
	// database.
	Engine struct {
		db *plugindb.Database
	}
)

// New creates an engine over the given database.
func New(db *plugindb.Database) *Engine {
	return &Engine{db: db}
}

// Sort materializes every group of the registry's category: it ensures the
// group's destination folder and copies each resolvable plugin's shim file
// into it, overwriting prior copies. The same plugin named by several groups
// is copied once per group; no cross-group cache is kept.
func (e *Engine) Sort(reg *group.Registry) (Result, error) {
	category := reg.Category()
	result := Result{Category: category}
	index := e.db.Index(category)

	for _, g := range reg.Groups() {
		if len(g.Plugins) == 0 {
			result.SkippedGroups = append(result.SkippedGroups, g.Name)
			continue
		}

		dest := e.db.DestinationPath(g, category)
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return result, fmt.Errorf("failed to create group folder %s: %w", dest, err)
		}

		for _, plugin := range g.Plugins {
			source, ok := index.Resolve(plugin)
			if !ok {
				result.Missing = append(result.Missing, MissingPlugin{Group: g.Name, Plugin: plugin})
				continue
			}

			target := filepath.Join(dest, plugindb.ShimFileName(plugin))
			if err := copyFile(source, target); err != nil {
				return result, fmt.Errorf("failed to copy '%s': %w", plugin, err)
			}
			result.Plugins++
		}

		result.Folders++
	}

	return result, nil
}

// Unsort reverses Sort for the registry's category: it deletes the shim
// files referenced by each group's current definition and prunes the group
// folder if that leaves it empty. Files the tool did not create are never
// deleted, and a folder holding any is left in place.
func (e *Engine) Unsort(reg *group.Registry) (UnsortResult, error) {
	category := reg.Category()
	result := UnsortResult{Category: category}

	if reg.Len() == 0 {
		result.NoGroups = true
		return result, nil
	}

	for _, g := range reg.Groups() {
		dest := e.db.DestinationPath(g, category)
		if !dirExists(dest) {
			continue
		}

		for _, plugin := range g.Plugins {
			path := filepath.Join(dest, plugindb.ShimFileName(plugin))
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				// The definition may have changed since sort ran.
				continue
			}

			if err := os.Remove(path); err != nil {
				return result, fmt.Errorf("failed to remove %s: %w", path, err)
			}
			result.Removed++
		}

		entries, err := os.ReadDir(dest)
		if err != nil {
			return result, fmt.Errorf("failed to read group folder %s: %w", dest, err)
		}
		if len(entries) == 0 {
			if err := os.Remove(dest); err != nil {
				return result, fmt.Errorf("failed to remove group folder %s: %w", dest, err)
			}
		}
	}

	return result, nil
}

// copyFile copies src to dst, truncating any existing file at dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
