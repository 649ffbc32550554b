// SPDX-License-Identifier: MPL-2.0

// Package tui provides the interactive prompts used during group creation
// and listing. It wraps charmbracelet/huh so command code deals with plain
// values instead of form plumbing.
package tui

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled by user")

// Config holds common configuration for prompts.
type Config struct {
	// Accessible enables accessible mode for screen readers and non-TTY
	// environments.
	Accessible bool
}

// DefaultConfig enables accessible mode when stdin is not a terminal or the
// ACCESSIBLE environment variable is set.
func DefaultConfig() Config {
	noTTY := !term.IsTerminal(int(os.Stdin.Fd()))
	return Config{
		Accessible: noTTY || os.Getenv("ACCESSIBLE") != "",
	}
}

// run executes a single-field form and maps user aborts to ErrCancelled.
func run(field huh.Field, cfg Config) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(huh.ThemeCharm()).
		WithAccessible(cfg.Accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return err
	}
	return nil
}
