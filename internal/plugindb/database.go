// SPDX-License-Identifier: MPL-2.0

// Package plugindb models the on-disk FL Studio plugin database: the
// per-category destination roots for sorted groups and the index of
// installed plugin shim files.
package plugindb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"flsorter/internal/group"
)

const (
	// ShimExt is the extension of the reference files FL Studio keeps for
	// installed plugins and that sorting copies into group folders.
	ShimExt = ".fst"

	// installedDirName is the parent directory of the per-category
	// installed-plugin roots.
	installedDirName = "Installed"

	// vst3DirName holds shims for newer-format (VST3) installations.
	vst3DirName = "VST3"
	// vstDirName holds shims for legacy (VST) installations.
	vstDirName = "VST"
)

// ErrInvalidLayout is the sentinel error wrapped by LayoutError.
var ErrInvalidLayout = errors.New("plugin database layout is invalid")

type (
	// LayoutError is returned when the plugin database under Base is missing
	// one or more required directories. All missing paths are aggregated into
	// a single error; no partial database is ever constructed.
	// It wraps ErrInvalidLayout for errors.Is() compatibility.
	LayoutError struct {
		Base    string
		Missing []string
	}

	// InstalledIndex resolves plugin names against the two installed-plugin
	// roots of one category. It holds no state beyond the root paths;
	// presence is determined live against the filesystem.
	InstalledIndex struct {
		vst3 string
		vst  string
	}

	// categoryDir pairs the destination root of a category with its
	// installed-plugin index.
	categoryDir struct {
		dest  string
		index InstalledIndex
	}

	// Database is the validated plugin database. Immutable after New.
	Database struct {
		base string
		dirs map[group.Category]categoryDir
	}
)

// New validates the fixed directory layout under basePath and constructs the
// database. Required, all at once: a destination root per category, an
// installed root per category under "Installed", and VST/VST3 directories
// under each installed root. Missing paths are aggregated into one
// LayoutError.
func New(basePath string) (*Database, error) {
	db := &Database{
		base: basePath,
		dirs: make(map[group.Category]categoryDir),
	}

	var missing []string
	for _, category := range group.Categories() {
		dest := filepath.Join(basePath, category.Segment())
		installed := filepath.Join(basePath, installedDirName, category.Segment())
		vst3 := filepath.Join(installed, vst3DirName)
		vst := filepath.Join(installed, vstDirName)

		for _, dir := range []string{dest, installed, vst3, vst} {
			if !dirExists(dir) {
				missing = append(missing, dir)
			}
		}

		db.dirs[category] = categoryDir{
			dest:  dest,
			index: InstalledIndex{vst3: vst3, vst: vst},
		}
	}

	if len(missing) > 0 {
		return nil, &LayoutError{Base: basePath, Missing: missing}
	}

	return db, nil
}

// Base returns the configured plugin database base path.
func (db *Database) Base() string {
	return db.base
}

// DestinationRoot returns the directory under which sorted group folders of
// the given category are materialized.
func (db *Database) DestinationRoot(category group.Category) string {
	return db.dirs[category].dest
}

// Index returns the installed-plugin index for the given category.
func (db *Database) Index(category group.Category) InstalledIndex {
	return db.dirs[category].index
}

// DestinationPath returns the destination folder for a group: the category's
// destination root joined with the group's display name.
func (db *Database) DestinationPath(g group.PluginGroup, category group.Category) string {
	return filepath.Join(db.dirs[category].dest, g.Name)
}

// ShimFileName returns the sorted file name for a plugin.
func ShimFileName(pluginName string) string {
	return pluginName + ShimExt
}

// Resolve probes the installed roots for the plugin's shim file, newer
// format first: VST3 installations shadow legacy VST installations of the
// same name. A miss is a normal outcome, not an error.
func (ix InstalledIndex) Resolve(pluginName string) (string, bool) {
	file := ShimFileName(pluginName)

	vst3 := filepath.Join(ix.vst3, file)
	if fileExists(vst3) {
		return vst3, true
	}

	vst := filepath.Join(ix.vst, file)
	if fileExists(vst) {
		return vst, true
	}

	return "", false
}

// Error implements the error interface.
func (e *LayoutError) Error() string {
	return fmt.Sprintf("%v at %s: missing %s",
		ErrInvalidLayout, e.Base, strings.Join(e.Missing, ", "))
}

// Unwrap returns the sentinel error for errors.Is() checks.
func (e *LayoutError) Unwrap() error {
	return ErrInvalidLayout
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
