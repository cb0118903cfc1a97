package installer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"javaver/internal/theme"
)

// ErrInterrupted is returned when the user stops a download with ctrl+c.
var ErrInterrupted = errors.New("download interrupted")

type progressMsg struct {
	done  int64
	total int64
}

type finishedMsg struct{ err error }

type progressModel struct {
	bar     progress.Model
	title   string
	done    int64
	total   int64
	started time.Time
	err     error
	closed  bool
}

func newProgressModel(title string) progressModel {
	return progressModel{
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
		title:   title,
		started: time.Now(),
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.err = ErrInterrupted
			m.closed = true
			return m, tea.Quit
		}
		return m, nil

	case progressMsg:
		m.done, m.total = msg.done, msg.total
		if m.total <= 0 {
			return m, nil
		}
		return m, m.bar.SetPercent(float64(m.done) / float64(m.total))

	case finishedMsg:
		m.err = msg.err
		m.closed = true
		return m, tea.Quit

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd

	default:
		return m, nil
	}
}

func (m progressModel) View() string {
	if m.closed {
		return ""
	}
	total := "?"
	if m.total > 0 {
		total = FormatSize(m.total)
	}
	info := fmt.Sprintf("%s / %s - %s", FormatSize(m.done), total, formatSpeed(m.done, time.Since(m.started)))
	pad := strings.Repeat(" ", 2)
	return "\n" + pad + m.title + "\n" + pad + m.bar.View() + "\n" + pad + theme.Faint.Render(info) + "\n"
}

// RunWithProgress draws a progress bar while fn runs. fn reports through
// the ProgressFunc it is given; ctrl+c cancels the context passed to fn.
func RunWithProgress(ctx context.Context, title string, fn func(context.Context, ProgressFunc) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(title), tea.WithContext(ctx))
	go func() {
		err := fn(ctx, func(done, total int64) {
			p.Send(progressMsg{done: done, total: total})
		})
		p.Send(finishedMsg{err: err})
	}()

	final, err := p.Run()
	if m, ok := final.(progressModel); ok && m.err != nil {
		return m.err
	}
	return err
}

// FormatSize formats bytes in human-readable form.
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatSpeed(bytes int64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "0 B/s"
	}
	return FormatSize(int64(float64(bytes)/elapsed.Seconds())) + "/s"
}
