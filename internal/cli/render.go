// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"flsorter/internal/group"
	"flsorter/internal/sorter"
)

// pluralize returns "s" unless n is exactly one.
func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// renderSortResult formats one category's sort outcome: skip notices first,
// then the aggregate count line.
func renderSortResult(res sorter.Result) string {
	var out strings.Builder

	for _, name := range res.SkippedGroups {
		fmt.Fprintf(&out, "%s '%s' %s\n",
			WarningStyle.Render("Skipping"),
			HighlightStyle.Render(name),
			WarningStyle.Render("because no plugins are defined"))
	}

	for _, miss := range res.Missing {
		fmt.Fprintf(&out, "%s '%s' %s\n",
			WarningStyle.Render("Skipping"),
			HighlightStyle.Render(miss.Plugin),
			WarningStyle.Render(fmt.Sprintf("(%s) because it is not installed", miss.Group)))
	}

	fmt.Fprintf(&out, "%s %s %s %s %s\n",
		SuccessStyle.Render("Successfully sorted"),
		HighlightStyle.Render(strconv.Itoa(res.Plugins)),
		SuccessStyle.Render(fmt.Sprintf("%s plugin%s into", res.Category.DisplayName(), pluralize(res.Plugins))),
		HighlightStyle.Render(strconv.Itoa(res.Folders)),
		SuccessStyle.Render(fmt.Sprintf("folder%s", pluralize(res.Folders))))

	return out.String()
}

// renderUnsortResult formats one category's unsort outcome. "No groups
// defined" and "nothing to unsort" are reported distinctly.
func renderUnsortResult(res sorter.UnsortResult) string {
	display := res.Category.DisplayName()

	if res.NoGroups {
		return fmt.Sprintf("%s %s %s\n",
			SuccessStyle.Render("Skipped"),
			HighlightStyle.Render(display+"s"),
			SuccessStyle.Render("because there are no plugin groups"))
	}

	if res.Removed == 0 {
		return fmt.Sprintf("%s %s %s\n",
			SuccessStyle.Render("Found no"),
			HighlightStyle.Render(display),
			SuccessStyle.Render("plugins to unsort"))
	}

	return fmt.Sprintf("%s %s %s\n",
		SuccessStyle.Render("Successfully unsorted"),
		HighlightStyle.Render(strconv.Itoa(res.Removed)),
		SuccessStyle.Render(fmt.Sprintf("%s plugin%s", display, pluralize(res.Removed))))
}

// renderSavedGroup formats the confirmation printed after a group is saved.
func renderSavedGroup(category group.Category, count int, fileID string) string {
	return fmt.Sprintf("%s %s %s %s\n",
		SuccessStyle.Render("Saved"),
		HighlightStyle.Render(strconv.Itoa(count)),
		SuccessStyle.Render(fmt.Sprintf("%s plugin%s to", category.DisplayName(), pluralize(count))),
		HighlightStyle.Render(fileID+group.DefinitionExt))
}
