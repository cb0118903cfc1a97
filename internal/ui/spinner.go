package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct {
	err error
}

type spinnerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
	err      error
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return spinnerModel{spinner: s, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			m.err = ErrAborted
			return m, tea.Quit
		}
		return m, nil
	case doneMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf(" %s %s\n", m.spinner.View(), m.message)
}

// WithSpinner runs fn while animating message. Use it only on a terminal.
// Ctrl+C cancels the context passed to fn and waits for fn to return.
func WithSpinner(ctx context.Context, message string, fn func(context.Context) error) error {
	return runSpinner(ctx, tea.NewProgram(newSpinnerModel(message)), fn)
}

func runSpinner(ctx context.Context, p *tea.Program, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		err := fn(ctx)
		done <- err
		p.Send(doneMsg{err: err})
	}()

	final, err := p.Run()
	cancel()
	<-done
	if err != nil {
		return err
	}
	return final.(spinnerModel).err
}
