package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mohitpandey15/esg-chatbot/ui/theme"
)

// View renders the main application view
func (m Model) View() string {
	if m.TerminalWidth == 0 || m.TerminalHeight == 0 {
		return "Loading..."
	}

	if m.Preview.Visible() {
		return m.Preview.View()
	}
	if m.Help.Visible() {
		return m.Help.View()
	}

	t := theme.Current

	header := t.Header.Width(m.TerminalWidth).Render("ESG Chatbot")

	chatBorder := t.BorderUnfocused
	tableBorder := t.BorderUnfocused
	if m.Focus == FocusChat {
		chatBorder = t.BorderFocused
	}
	if m.Focus == FocusTable {
		tableBorder = t.BorderFocused
	}

	chatView := chatBorder.Width(m.TerminalWidth - 2).Render(m.Chat.View())
	tableView := tableBorder.Width(m.TerminalWidth - 2).Render(m.Table.View())

	footer := t.Footer.Width(m.TerminalWidth).Render(m.footerText())

	body := lipgloss.JoinVertical(lipgloss.Left, header, chatView, tableView, footer)

	if m.Toast.Visible() {
		return lipgloss.JoinVertical(lipgloss.Left, m.Toast.View(), body)
	}
	return body
}

func (m Model) footerText() string {
	if m.Focus == FocusTable {
		return "Tab: chat | s: sort | [/]: page | e: expand | c: copy | x/X: export | ?: help | q: quit"
	}
	ds := m.engine.Dataset()
	if ds == nil {
		return "Tab: results | Enter: ask | Ctrl+C: quit"
	}
	return fmt.Sprintf("Tab: results (%d rows) | Enter: ask | Ctrl+C: quit", ds.Len())
}
