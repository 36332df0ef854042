package table

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mohitpandey15/esg-chatbot/grid"
	"github.com/mohitpandey15/esg-chatbot/ui/theme"
)

// ExpandCellMsg is emitted when the user opens a truncated cell.
type ExpandCellMsg struct {
	Cell grid.ExpandedCell
}

// CopyCellMsg is emitted when the user copies the selected cell.
type CopyCellMsg struct {
	Text string
}

// Model renders the paginated result grid. All row derivation (sort order,
// row limit, page slicing) lives in the engine; the model only tracks the
// cursor and horizontal scroll.
type Model struct {
	engine *grid.Engine

	width  int
	height int

	colWidths []int
	colOffset int
	cursorRow int
	cursorCol int

	focused bool
}

const maxColWidth = 32

// New creates a table model over the given engine.
func New(engine *grid.Engine) Model {
	m := Model{engine: engine, focused: true}
	m.Refresh()
	return m
}

// SetSize sets the viewport dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetFocused sets whether the table is focused
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// Focused returns whether the table is focused
func (m Model) Focused() bool {
	return m.focused
}

// Refresh recomputes column widths and clamps the cursor after the engine's
// dataset or view changed.
func (m *Model) Refresh() {
	ds := m.engine.Dataset()
	if ds == nil || ds.Empty() {
		m.colWidths = nil
		m.colOffset, m.cursorRow, m.cursorCol = 0, 0, 0
		return
	}

	cols := ds.Columns()
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c) + 2 // room for the sort arrow
	}
	for _, rec := range m.engine.VisibleRows() {
		for i, c := range cols {
			w := lipgloss.Width(grid.FormatValue(rec.Value(c)))
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColWidth {
			widths[i] = maxColWidth
		}
	}
	m.colWidths = widths

	if m.cursorCol >= len(cols) {
		m.cursorCol = max(0, len(cols)-1)
	}
	if rows := len(m.engine.PageRows()); m.cursorRow >= rows {
		m.cursorRow = max(0, rows-1)
	}
	if m.colOffset > m.cursorCol {
		m.colOffset = m.cursorCol
	}
}

// SelectedValue returns the value under the cursor together with its column
// name and its index into the visible row order.
func (m Model) SelectedValue() (grid.Value, string, int) {
	ds := m.engine.Dataset()
	rows := m.engine.PageRows()
	if ds == nil || m.cursorRow >= len(rows) || m.cursorCol >= len(ds.Columns()) {
		return grid.Null(), "", 0
	}
	col := ds.Columns()[m.cursorCol]
	return rows[m.cursorRow].Value(col), col, m.engine.PageStart() + m.cursorRow
}

// visibleDataRows returns the number of data lines the viewport can show
func (m Model) visibleDataRows() int {
	// header, separator, pagination bar, status bar
	return max(0, m.height-4)
}

// visibleCols calculates how many columns fit in the current width
func (m Model) visibleCols() int {
	if len(m.colWidths) == 0 {
		return 0
	}

	usedWidth := 0
	count := 0
	for i := m.colOffset; i < len(m.colWidths); i++ {
		colWidth := m.colWidths[i] + 3
		if usedWidth+colWidth > m.width {
			break
		}
		usedWidth += colWidth
		count++
	}
	return max(1, count)
}

// Update handles input
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	ds := m.engine.Dataset()
	if ds == nil || ds.Empty() {
		return m, nil
	}
	pageLen := len(m.engine.PageRows())
	numCols := len(ds.Columns())

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursorRow > 0 {
				m.cursorRow--
			}
		case "down", "j":
			if m.cursorRow < pageLen-1 {
				m.cursorRow++
			}
		case "home":
			m.cursorRow = 0
		case "end":
			m.cursorRow = max(0, pageLen-1)

		case "left", "h":
			if m.cursorCol > 0 {
				m.cursorCol--
				if m.cursorCol < m.colOffset {
					m.colOffset = m.cursorCol
				}
			}
		case "right", "l":
			if m.cursorCol < numCols-1 {
				m.cursorCol++
				if visible := m.visibleCols(); m.cursorCol >= m.colOffset+visible {
					m.colOffset = m.cursorCol - visible + 1
				}
			}

		case "[", "p":
			m.engine.PrevPage()
			m.clampAfterPageChange()
		case "]", "n":
			m.engine.NextPage()
			m.clampAfterPageChange()

		case "s":
			m.engine.SetSort(ds.Columns()[m.cursorCol])
			m.cursorRow = 0
			m.Refresh()

		case "enter", "e":
			v, col, idx := m.SelectedValue()
			if m.engine.ActivateCell(v, col, idx) {
				cell := *m.engine.Expanded()
				return m, func() tea.Msg { return ExpandCellMsg{Cell: cell} }
			}
		case "c":
			v, _, _ := m.SelectedValue()
			if !v.IsNull() {
				text := v.String()
				return m, func() tea.Msg { return CopyCellMsg{Text: text} }
			}
		}
	}

	return m, nil
}

func (m *Model) clampAfterPageChange() {
	if rows := len(m.engine.PageRows()); m.cursorRow >= rows {
		m.cursorRow = max(0, rows-1)
	}
}

// View renders the table
func (m Model) View() string {
	ds := m.engine.Dataset()
	if m.width <= 0 || m.height <= 0 || ds == nil {
		return ""
	}
	if ds.Empty() {
		return theme.Current.StatusBar.Render("No rows.")
	}

	cols := ds.Columns()
	endCol := min(m.colOffset+m.visibleCols(), len(cols))

	var lines []string
	lines = append(lines, m.renderHeaderLine(cols, m.colOffset, endCol))
	lines = append(lines, m.renderSeparator(m.colOffset, endCol))

	rows := m.engine.PageRows()
	limit := min(len(rows), m.visibleDataRows())
	for i := 0; i < limit; i++ {
		lines = append(lines, m.renderDataRow(rows[i], i, cols, m.colOffset, endCol))
	}

	lines = append(lines, m.renderPageBar())
	lines = append(lines, m.renderStatusBar(len(rows)))

	return strings.Join(lines, "\n")
}

// renderHeaderLine renders the header row with a sort arrow on the active
// sort column
func (m Model) renderHeaderLine(cols []string, startCol, endCol int) string {
	t := theme.Current
	sortState := m.engine.Sort()

	var cells []string
	for i := startCol; i < endCol; i++ {
		title := cols[i]
		if cols[i] == sortState.Column {
			if sortState.Direction == grid.Ascending {
				title += " ↑"
			} else {
				title += " ↓"
			}
		}
		cells = append(cells, t.TableHeader.Render(" "+truncateOrPad(title, m.colWidths[i])+" "))
	}

	separatorStyle := lipgloss.NewStyle().Foreground(t.Colors.BorderUnfocused)
	return strings.Join(cells, separatorStyle.Render("│"))
}

// renderSeparator renders the separator between header and data
func (m Model) renderSeparator(startCol, endCol int) string {
	t := theme.Current
	separatorStyle := lipgloss.NewStyle().Foreground(t.Colors.BorderUnfocused)

	var parts []string
	for i := startCol; i < endCol; i++ {
		parts = append(parts, strings.Repeat("─", m.colWidths[i]+2))
	}
	return separatorStyle.Render(strings.Join(parts, "┼"))
}

// renderDataRow renders a single data row with kind-based cell styling
func (m Model) renderDataRow(rec grid.Record, rowIdx int, cols []string, startCol, endCol int) string {
	t := theme.Current
	isSelectedRow := rowIdx == m.cursorRow

	var cells []string
	for i := startCol; i < endCol; i++ {
		v := rec.Value(cols[i])
		cellText := truncateOrPad(grid.FormatValue(v), m.colWidths[i])

		style := t.TableCell
		switch v.Kind() {
		case grid.KindNumber, grid.KindNumericString:
			style = t.TableNumber
		case grid.KindNull:
			style = t.TableNull
		}
		if isSelectedRow && i == m.cursorCol && m.focused {
			style = t.TableSelected
		}
		cells = append(cells, style.Render(" "+cellText+" "))
	}

	separatorStyle := lipgloss.NewStyle().Foreground(t.Colors.BorderUnfocused)
	return strings.Join(cells, separatorStyle.Render("│"))
}

// renderPageBar renders the page-number strip with ellipsis gaps
func (m Model) renderPageBar() string {
	t := theme.Current
	total := m.engine.TotalPages()
	if total <= 1 {
		return ""
	}

	var parts []string
	for _, item := range m.engine.PageNumbers() {
		if item.Ellipsis {
			parts = append(parts, t.PageInactive.Render("…"))
			continue
		}
		label := fmt.Sprintf("%d", item.Page)
		if item.Page == m.engine.CurrentPage() {
			parts = append(parts, t.PageActive.Render(label))
		} else {
			parts = append(parts, t.PageInactive.Render(label))
		}
	}
	return strings.Join(parts, "")
}

// renderStatusBar renders the status bar with navigation info
func (m Model) renderStatusBar(pageLen int) string {
	t := theme.Current

	total := len(m.engine.VisibleRows())
	leftInfo := t.StatusBar.Render(fmt.Sprintf(
		"Row %d/%d, Col %d/%d",
		m.engine.PageStart()+m.cursorRow+1, total,
		m.cursorCol+1, len(m.colWidths),
	))
	rightInfo := t.StatusBar.Render(fmt.Sprintf(
		"Page %d/%d | s:sort [/]:page e:expand c:copy",
		m.engine.CurrentPage(), m.engine.TotalPages(),
	))

	spacing := max(m.width-lipgloss.Width(leftInfo)-lipgloss.Width(rightInfo), 1)
	return leftInfo + strings.Repeat(" ", spacing) + rightInfo
}

func truncateOrPad(s string, width int) string {
	currentWidth := lipgloss.Width(s)

	if currentWidth > width {
		runes := []rune(s)
		if width > 3 {
			truncated := ""
			w := 0
			for _, r := range runes {
				rw := lipgloss.Width(string(r))
				if w+rw > width-3 {
					break
				}
				truncated += string(r)
				w += rw
			}
			return truncated + "..."
		}
		return string(runes[:width])
	}

	return s + strings.Repeat(" ", width-currentWidth)
}
