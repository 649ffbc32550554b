// SPDX-License-Identifier: MPL-2.0

package tui

import "github.com/charmbracelet/huh"

// MultiSelectIndexes prompts the user to pick any number of options and
// returns the indexes of the chosen ones. Indexes keep duplicate labels
// distinguishable (plugin names may repeat).
func MultiSelectIndexes(title string, options []string, cfg Config) ([]int, error) {
	huhOpts := make([]huh.Option[int], len(options))
	for i, opt := range options {
		huhOpts[i] = huh.NewOption(opt, i)
	}

	var selected []int
	sel := huh.NewMultiSelect[int]().
		Title(title).
		Options(huhOpts...).
		Value(&selected)

	if err := run(sel, cfg); err != nil {
		return nil, err
	}
	return selected, nil
}

// Select prompts the user to pick exactly one option. The list is
// filterable by typing.
func Select(title string, options []string, cfg Config) (string, error) {
	huhOpts := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOpts[i] = huh.NewOption(opt, opt)
	}

	var choice string
	sel := huh.NewSelect[string]().
		Title(title).
		Options(huhOpts...).
		Height(8).
		Value(&choice)

	if err := run(sel, cfg); err != nil {
		return "", err
	}
	return choice, nil
}

// Confirm asks a yes/no question and returns the answer.
func Confirm(title string, defaultValue bool, cfg Config) (bool, error) {
	answer := defaultValue
	confirm := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&answer)

	if err := run(confirm, cfg); err != nil {
		return false, err
	}
	return answer, nil
}
