// SPDX-License-Identifier: MPL-2.0

package group

import (
	"errors"
	"fmt"
)

const (
	// CategoryEffect covers audio-processing plugins.
	CategoryEffect Category = "effect"
	// CategoryGenerator covers sound-producing plugins (instruments).
	CategoryGenerator Category = "generator"
)

// ErrInvalidCategory is the sentinel error wrapped by InvalidCategoryError.
var ErrInvalidCategory = errors.New("invalid plugin group category")

type (
	// Category partitions the group namespace: a group name may exist once
	// per category. Each category maps to a display name and a fixed plugin
	// database directory segment.
	Category string

	// InvalidCategoryError is returned when a Category value is not recognized.
	// It wraps ErrInvalidCategory for errors.Is() compatibility.
	InvalidCategoryError struct {
		Value Category
	}
)

// categoryTable is the closed mapping from category to its display name and
// its directory segment inside the plugin database.
var categoryTable = map[Category]struct {
	display string
	segment string
}{
	CategoryEffect:    {display: "effect", segment: "Effects"},
	CategoryGenerator: {display: "generator", segment: "Generators"},
}

// Categories returns all categories in fixed processing order.
func Categories() []Category {
	return []Category{CategoryEffect, CategoryGenerator}
}

// ParseCategory converts a user-supplied string (e.g. a --type flag value)
// into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks that the category is one of the known variants.
func (c Category) Validate() error {
	if _, ok := categoryTable[c]; !ok {
		return &InvalidCategoryError{Value: c}
	}
	return nil
}

// DisplayName returns the lowercase singular name used in messages and as
// the registry subdirectory name ("effect" or "generator").
func (c Category) DisplayName() string {
	return categoryTable[c].display
}

// Segment returns the plugin database directory segment for the category
// ("Effects" or "Generators").
func (c Category) Segment() string {
	return categoryTable[c].segment
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// Error implements the error interface.
func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("%v: %q (valid values: effect, generator)", ErrInvalidCategory, string(e.Value))
}

// Unwrap returns the sentinel error for errors.Is() checks.
func (e *InvalidCategoryError) Unwrap() error {
	return ErrInvalidCategory
}
