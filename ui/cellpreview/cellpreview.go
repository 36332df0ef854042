package cellpreview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mohitpandey15/esg-chatbot/grid"
	"github.com/mohitpandey15/esg-chatbot/ui/theme"
)

// Model is the centered dialog showing the full, untruncated value of an
// expanded cell.
type Model struct {
	viewport viewport.Model
	cell     grid.ExpandedCell
	visible  bool

	width  int
	height int
}

// New creates a hidden cell preview
func New() Model {
	vp := viewport.New(60, 15)
	vp.Style = theme.Current.TableCell
	return Model{viewport: vp}
}

// Show displays the preview for the given cell
func (m *Model) Show(cell grid.ExpandedCell) {
	m.cell = cell
	m.viewport.SetContent(wrap(cell.Value, m.viewport.Width))
	m.viewport.GotoTop()
	m.visible = true
}

// Hide hides the preview
func (m *Model) Hide() {
	m.visible = false
}

// Visible returns whether the preview is visible
func (m Model) Visible() bool {
	return m.visible
}

// SetSize sets the terminal size for centering
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	m.viewport.Width = min(70, max(20, width-10))
	m.viewport.Height = min(15, max(3, height-8))
	if m.visible {
		m.viewport.SetContent(wrap(m.cell.Value, m.viewport.Width))
	}
}

// Update handles input. Esc and Enter close; other keys scroll.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			m.visible = false
		default:
			m.viewport, cmd = m.viewport.Update(msg)
		}
	}
	return m, cmd
}

// View renders the dialog centered on screen
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	t := theme.Current

	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Colors.Primary).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.Colors.Primary).
		Bold(true)

	helpStyle := lipgloss.NewStyle().
		Foreground(t.Colors.ForegroundDim).
		Padding(1, 0, 0, 0)

	title := titleStyle.Render(fmt.Sprintf("%s  (row %d)", m.cell.Column, m.cell.RowIndex+1))
	help := helpStyle.Render("Esc/Enter: close • ↑↓: scroll")

	dialog := dialogStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		m.viewport.View(),
		help,
	))

	return center(dialog, m.width, m.height)
}

// center pads the dialog into the middle of the terminal
func center(dialog string, width, height int) string {
	dialogWidth := lipgloss.Width(dialog)
	dialogHeight := lipgloss.Height(dialog)

	padLeft := max((width-dialogWidth)/2, 0)
	padTop := max((height-dialogHeight)/2, 0)

	var lines []string
	for i := 0; i < padTop; i++ {
		lines = append(lines, "")
	}

	leftPadding := strings.Repeat(" ", padLeft)
	for _, line := range strings.Split(dialog, "\n") {
		lines = append(lines, leftPadding+line)
	}

	for len(lines) < height {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// wrap hard-wraps text so long unbroken values still fit the viewport
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\n' {
			b.WriteRune(r)
			col = 0
			continue
		}
		if col >= width {
			b.WriteRune('\n')
			col = 0
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}
