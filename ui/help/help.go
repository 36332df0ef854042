package help

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mohitpandey15/esg-chatbot/ui/theme"
)

// Section groups related keymaps
type Section struct {
	Title   string
	Keymaps []Keymap
}

// Keymap represents a single key mapping
type Keymap struct {
	Key         string
	Description string
}

// Model is the keybinding help overlay
type Model struct {
	sections []Section
	visible  bool
	width    int
	height   int
}

// New creates the help overlay with the application's keymaps
func New() Model {
	return Model{
		sections: []Section{
			{
				Title: "Global",
				Keymaps: []Keymap{
					{"Tab", "Switch focus between chat and results"},
					{"Ctrl+C", "Quit application"},
				},
			},
			{
				Title: "Chat",
				Keymaps: []Keymap{
					{"Enter", "Ask the question"},
					{"PgUp / PgDn", "Scroll transcript"},
				},
			},
			{
				Title: "Results Table",
				Keymaps: []Keymap{
					{"j / ↓", "Move down one row"},
					{"k / ↑", "Move up one row"},
					{"h / ←", "Move left one column"},
					{"l / →", "Move right one column"},
					{"[ / ]", "Previous / next page"},
					{"s", "Sort by column (toggle ASC/DESC)"},
					{"e / Enter", "Expand truncated cell"},
					{"c", "Copy cell to clipboard"},
					{"x", "Export result as CSV"},
					{"X", "Export result as JSON"},
					{"t", "Cycle themes"},
					{"q", "Quit application"},
				},
			},
			{
				Title: "Expanded Cell",
				Keymaps: []Keymap{
					{"↑ / ↓", "Scroll"},
					{"Esc / Enter", "Close"},
				},
			},
		},
	}
}

// Show displays the overlay
func (m *Model) Show() {
	m.visible = true
}

// Hide hides the overlay
func (m *Model) Hide() {
	m.visible = false
}

// Visible returns whether the overlay is visible
func (m Model) Visible() bool {
	return m.visible
}

// SetSize sets the terminal size for centering
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update closes the overlay on any dismissal key
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "enter", "q", "?":
			m.visible = false
		}
	}
	return m, nil
}

// View renders the overlay centered on screen
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Foreground(t.Colors.Primary).
		Bold(true)
	keyStyle := lipgloss.NewStyle().
		Foreground(t.Colors.Accent).
		Width(14)
	descStyle := lipgloss.NewStyle().
		Foreground(t.Colors.Foreground)
	helpStyle := lipgloss.NewStyle().
		Foreground(t.Colors.ForegroundDim).
		Padding(1, 0, 0, 0)

	var lines []string
	for i, section := range m.sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, titleStyle.Render(section.Title))
		for _, km := range section.Keymaps {
			lines = append(lines, keyStyle.Render(km.Key)+descStyle.Render(km.Description))
		}
	}
	lines = append(lines, helpStyle.Render("Esc/Enter/?: close"))

	dialog := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Colors.Primary).
		Padding(1, 3).
		Render(strings.Join(lines, "\n"))

	return center(dialog, m.width, m.height)
}

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
