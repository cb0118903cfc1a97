// Package theme holds javaver's terminal palette and message styles.
package theme

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Java-inspired palette.
var (
	Primary   = lipgloss.Color("#f89820")
	Secondary = lipgloss.Color("#5382a1")

	Success = lipgloss.Color("#00d26a")
	Error   = lipgloss.Color("#ff3b30")
	Warning = lipgloss.Color("#ffcc00")
	Info    = lipgloss.Color("#5ac8fa")

	TextFaint = lipgloss.Color("#8e8e93")
)

var (
	Subtitle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Info)

	Faint = lipgloss.NewStyle().
		Foreground(TextFaint).
		Faint(true)

	// Active marks the SDK currently first on the machine path.
	Active = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Label = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(Info)

	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	TableCell = lipgloss.NewStyle().
			Padding(0, 1)

	SuccessBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Success).
			Padding(0, 2)
)

// SuccessMessage returns a formatted success message.
func SuccessMessage(msg string) string {
	return SuccessStyle.Render("✓ " + msg)
}

// ErrorMessage returns a formatted error message.
func ErrorMessage(msg string) string {
	return ErrorStyle.Render("✗ " + msg)
}

// WarningMessage returns a formatted warning message.
func WarningMessage(msg string) string {
	return WarningStyle.Render("⚠ " + msg)
}

// InfoMessage returns a formatted info message.
func InfoMessage(msg string) string {
	return InfoStyle.Render("ℹ " + msg)
}

// Printer writes themed lines to a writer.
type Printer struct {
	w     io.Writer
	quiet bool
}

// NewPrinter returns a Printer on w. A quiet printer drops Success and Info lines.
func NewPrinter(w io.Writer, quiet bool) *Printer {
	return &Printer{w: w, quiet: quiet}
}

func (p *Printer) Success(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.w, SuccessMessage(fmt.Sprintf(format, args...)))
}

func (p *Printer) Info(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.w, InfoMessage(fmt.Sprintf(format, args...)))
}

func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.w, WarningMessage(fmt.Sprintf(format, args...)))
}

func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.w, ErrorMessage(fmt.Sprintf(format, args...)))
}
