// Package toaster provides a one-line status toast shown under the form.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/mdinput/internal/ui/styles"
)

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess prefixes ✓ in the success color.
	StyleSuccess Style = iota
	// StyleError prefixes ✗ in the error color.
	StyleError
	// StyleInfo prefixes • in the description color.
	StyleInfo
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int // bumped on every Show so stale dismissals are ignored
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays a toast and returns the command that dismisses it after d.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.seq++
	m.message = message
	m.style = style
	m.visible = true
	return m, ScheduleDismiss(m.seq, d)
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Update hides the toast when its own DismissMsg arrives.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		return m.Hide()
	}
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// View renders the toast line.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	switch m.style {
	case StyleError:
		return lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Render("✗ " + m.message)
	case StyleInfo:
		return lipgloss.NewStyle().Foreground(styles.TextDescriptionColor).Render("• " + m.message)
	default: // StyleSuccess
		return lipgloss.NewStyle().Foreground(styles.StatusSuccessColor).Render("✓ " + m.message)
	}
}

// DismissMsg signals that the toast with the matching sequence should be
// dismissed.
type DismissMsg struct {
	seq int
}

// ScheduleDismiss returns a command that dismisses toast seq after d.
func ScheduleDismiss(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}
