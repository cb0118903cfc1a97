// Package ui holds javaver's interactive prompts.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"javaver/internal/registry"
	"javaver/internal/theme"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted")

// Ordered returns entries with the active one first, then the rest in
// registry order.
func Ordered(entries []registry.Entry, active string) []registry.Entry {
	out := make([]registry.Entry, 0, len(entries))
	for _, e := range entries {
		if active != "" && strings.EqualFold(e.Name, active) {
			out = append(out, e)
		}
	}
	for _, e := range entries {
		if active == "" || !strings.EqualFold(e.Name, active) {
			out = append(out, e)
		}
	}
	return out
}

// Label renders one picker row, padding the name column to width.
func Label(e registry.Entry, width int, active bool) string {
	name := e.Name
	if active {
		name = theme.Active.Render(e.Name)
	}
	pad := width - lipgloss.Width(name)
	if pad < 0 {
		pad = 0
	}
	label := fmt.Sprintf("%s%s  %s", name, strings.Repeat(" ", pad), e.Path)
	if active {
		label += " " + theme.Faint.Render("[active]")
	}
	return label
}

// PickSDK asks the user to choose one of entries. The active entry, if
// any, is listed first.
func PickSDK(title string, entries []registry.Entry, active string) (registry.Entry, error) {
	if len(entries) == 0 {
		return registry.Entry{}, errors.New("no SDKs registered")
	}

	ordered := Ordered(entries, active)
	width := 0
	for _, e := range ordered {
		if w := lipgloss.Width(e.Name); w > width {
			width = w
		}
	}

	options := make([]huh.Option[int], len(ordered))
	for i, e := range ordered {
		isActive := active != "" && strings.EqualFold(e.Name, active)
		options[i] = huh.NewOption(Label(e, width, isActive), i)
	}

	var selected int
	err := huh.NewSelect[int]().
		Title(theme.Subtitle.Render(title)).
		Description(theme.Faint.Render("Use arrow keys to navigate, Enter to select")).
		Options(options...).
		Value(&selected).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return registry.Entry{}, ErrAborted
	}
	if err != nil {
		return registry.Entry{}, err
	}
	return ordered[selected], nil
}

// Confirm asks a yes/no question.
func Confirm(title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(theme.Subtitle.Render(title)).
		Description(theme.Faint.Render(description)).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, ErrAborted
	}
	return confirmed, err
}
