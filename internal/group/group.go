// SPDX-License-Identifier: MPL-2.0

package group

import "strings"

// PluginGroup is a named, ordered collection of plugin-name references.
//
// The name is a free-form display string and is not required to be
// filesystem-safe; the definition file name (the "file identifier") is chosen
// independently. Plugin names may repeat and their order is preserved across
// save and load.
type PluginGroup struct {
	Name    string   `toml:"name"`
	Plugins []string `toml:"plugins"`
}

// NewPluginGroup creates a PluginGroup with the given name and plugin names.
func NewPluginGroup(name string, plugins []string) PluginGroup {
	return PluginGroup{Name: name, Plugins: plugins}
}

// DefaultFileID derives a definition file identifier from a display name:
// lowercased, with spaces replaced by underscores.
func DefaultFileID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
