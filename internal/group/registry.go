// SPDX-License-Identifier: MPL-2.0

package group

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefinitionExt is the file extension that marks group definition files.
const DefinitionExt = ".toml"

// ErrMalformedGroupFile is the sentinel error wrapped by ParseError.
var ErrMalformedGroupFile = errors.New("malformed plugin group file")

type (
	// ParseError is returned when a group definition file cannot be
	// deserialized. A single malformed file aborts the entire registry load.
	// It wraps ErrMalformedGroupFile for errors.Is() compatibility.
	ParseError struct {
		File string
		Err  error
	}

	// DuplicateWarning records a display-name collision between two
	// definition files. The later-enumerated file wins; the earlier group is
	// discarded. Collisions are non-fatal and reported by the CLI.
	DuplicateWarning struct {
		// Name is the duplicated display name.
		Name string
		// File is the definition file whose group was retained.
		File string
		// Replaced is the definition file whose group was discarded.
		Replaced string
	}

	// Registry holds the plugin groups of one category, keyed by definition
	// file identifier (the filename without extension).
	//
	// A registry is populated once at startup and is a snapshot of the
	// directory at that point; Save writes through to disk without updating
	// the snapshot. Groups are kept in lexicographic file-identifier order so
	// that processing and reported output are reproducible regardless of the
	// underlying directory enumeration.
	Registry struct {
		category Category
		dir      string
		ids      []string
		groups   map[string]PluginGroup
		warnings []DuplicateWarning
	}
)

// LoadRegistry enumerates the immediate entries of dir, filters them to
// definition files, and deserializes each one.
//
// Any malformed file fails the whole load: no partial registry is returned.
// If two files declare the same group name, the lexicographically later file
// wins and a DuplicateWarning is recorded; the load still succeeds.
func LoadRegistry(dir string, category Category) (*Registry, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read group directory %s: %w", dir, err)
	}

	r := &Registry{
		category: category,
		dir:      dir,
		groups:   make(map[string]PluginGroup),
	}

	// Display name -> file identifier, for duplicate detection.
	byName := make(map[string]string)

	// os.ReadDir returns entries sorted by filename, which fixes both the
	// duplicate-resolution order and the processing order.
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, DefinitionExt) {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read group file %s: %w", path, err)
		}

		var g PluginGroup
		if err := toml.Unmarshal(data, &g); err != nil {
			return nil, &ParseError{File: path, Err: err}
		}

		id := strings.TrimSuffix(name, DefinitionExt)
		if prev, ok := byName[g.Name]; ok {
			r.warnings = append(r.warnings, DuplicateWarning{
				Name:     g.Name,
				File:     name,
				Replaced: prev + DefinitionExt,
			})
			r.drop(prev)
		}

		byName[g.Name] = id
		r.ids = append(r.ids, id)
		r.groups[id] = g
	}

	return r, nil
}

// drop removes the group stored under the given file identifier.
func (r *Registry) drop(id string) {
	delete(r.groups, id)
	for i, existing := range r.ids {
		if existing == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			return
		}
	}
}

// Category returns the category this registry belongs to.
func (r *Registry) Category() Category {
	return r.category
}

// Dir returns the directory containing the definition files.
func (r *Registry) Dir() string {
	return r.dir
}

// Len returns the number of retained groups.
func (r *Registry) Len() int {
	return len(r.ids)
}

// Groups returns the retained groups in file-identifier order.
func (r *Registry) Groups() []PluginGroup {
	groups := make([]PluginGroup, 0, len(r.ids))
	for _, id := range r.ids {
		groups = append(groups, r.groups[id])
	}
	return groups
}

// FileIDs returns the retained definition file identifiers in order.
func (r *Registry) FileIDs() []string {
	ids := make([]string, len(r.ids))
	copy(ids, r.ids)
	return ids
}

// Warnings returns the duplicate-name warnings recorded during load.
func (r *Registry) Warnings() []DuplicateWarning {
	return r.warnings
}

// Path returns the definition file path for the given file identifier.
func (r *Registry) Path(fileID string) string {
	return filepath.Join(r.dir, fileID+DefinitionExt)
}

// Exists reports whether a definition file with the given identifier is
// already present on disk.
func (r *Registry) Exists(fileID string) bool {
	info, err := os.Stat(r.Path(fileID))
	return err == nil && info.Mode().IsRegular()
}

// Save serializes the group and writes it under the given file identifier,
// unconditionally overwriting any existing file. The identifier is
// independent of the group's display name.
func (r *Registry) Save(fileID string, g PluginGroup) error {
	data, err := toml.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to serialize group '%s': %w", g.Name, err)
	}

	path := r.Path(fileID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write group file %s: %w", path, err)
	}
	return nil
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrMalformedGroupFile, e.File, e.Err)
}

// Unwrap returns the sentinel and the underlying deserialization error.
func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedGroupFile, e.Err}
}
