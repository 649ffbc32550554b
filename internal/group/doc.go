// SPDX-License-Identifier: MPL-2.0

// Package group defines plugin groups and the per-category registry that
// loads and saves their TOML definition files.
package group
