// Package components provides reusable TUI components for the citybike CLI.
package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/citybike/internal/adapters/in/cli/ui/styles"
)

// SpinnerModel wraps the bubbles spinner with the citybike styling.
type SpinnerModel struct {
	spinner spinner.Model
	message string
	style   lipgloss.Style
}

// SpinnerOption configures a SpinnerModel.
type SpinnerOption func(*SpinnerModel)

// NewSpinner creates a new spinner.
func NewSpinner(opts ...SpinnerOption) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	m := SpinnerModel{
		spinner: s,
		message: "Loading...",
		style:   styles.Theme.Muted,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// WithMessage sets the spinner message.
func WithMessage(msg string) SpinnerOption {
	return func(m *SpinnerModel) {
		m.message = msg
	}
}

// Update advances the animation on spinner ticks.
func (m SpinnerModel) Update(msg tea.Msg) (SpinnerModel, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the spinner and its message.
func (m SpinnerModel) View() string {
	return m.spinner.View() + " " + m.style.Render(m.message)
}

// Tick returns the spinner tick command for animation.
func (m SpinnerModel) Tick() tea.Cmd {
	return m.spinner.Tick
}
