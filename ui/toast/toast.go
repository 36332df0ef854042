package toast

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mohitpandey15/esg-chatbot/ui/theme"
)

// ToastType represents the type of toast message
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastError
	ToastWarning
)

// dismissMsg expires a shown toast. The sequence number guards against a
// stale timer dismissing a newer toast.
type dismissMsg struct {
	seq int
}

const autoDismiss = 3 * time.Second

// Model represents a toast notification banner
type Model struct {
	message   string
	toastType ToastType
	visible   bool
	seq       int
	width     int
}

// New creates a new toast model
func New() Model {
	return Model{width: 80}
}

// SetSize sets the terminal dimensions for positioning
func (m *Model) SetSize(width, _ int) {
	m.width = width
}

// Show displays a toast message and schedules its expiry
func (m *Model) Show(message string, toastType ToastType) tea.Cmd {
	m.message = message
	m.toastType = toastType
	m.visible = true
	m.seq++

	seq := m.seq
	return tea.Tick(autoDismiss, func(time.Time) tea.Msg {
		return dismissMsg{seq: seq}
	})
}

// ShowError displays an error toast
func (m *Model) ShowError(message string) tea.Cmd {
	return m.Show(message, ToastError)
}

// ShowSuccess displays a success toast
func (m *Model) ShowSuccess(message string) tea.Cmd {
	return m.Show(message, ToastSuccess)
}

// ShowInfo displays an info toast
func (m *Model) ShowInfo(message string) tea.Cmd {
	return m.Show(message, ToastInfo)
}

// Visible returns whether the toast is currently visible
func (m Model) Visible() bool {
	return m.visible
}

// Hide hides the toast
func (m *Model) Hide() {
	m.visible = false
}

// Update handles expiry. Toasts dismiss on their timer only; key input
// never reaches this model while panels have focus.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(dismissMsg); ok && msg.seq == m.seq {
		m.visible = false
	}
	return m, nil
}

// View renders the toast as a single right-aligned banner line
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	t := theme.Current

	var color lipgloss.Color
	var icon string
	switch m.toastType {
	case ToastError:
		color, icon = t.Colors.Error, "✘"
	case ToastSuccess:
		color, icon = t.Colors.Success, "✔"
	case ToastWarning:
		color, icon = t.Colors.Warning, "⚠"
	default:
		color, icon = t.Colors.Info, "ℹ"
	}

	banner := lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Padding(0, 1).
		Render(icon + " " + m.message)

	pad := m.width - lipgloss.Width(banner)
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + banner
}
