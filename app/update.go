package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mohitpandey15/esg-chatbot/ai"
	"github.com/mohitpandey15/esg-chatbot/drivers"
	"github.com/mohitpandey15/esg-chatbot/grid"
	"github.com/mohitpandey15/esg-chatbot/logger"
	"github.com/mohitpandey15/esg-chatbot/storage"
	"github.com/mohitpandey15/esg-chatbot/ui/chat"
	"github.com/mohitpandey15/esg-chatbot/ui/table"
	"github.com/mohitpandey15/esg-chatbot/ui/theme"
)

const queryTimeout = 60 * time.Second

// queryResultMsg carries the outcome of one question round trip
type queryResultMsg struct {
	question string
	sql      string
	dataset  *grid.Dataset
	duration time.Duration
	err      error
}

// runQuestion generates SQL for the question, validates it and executes it.
// The whole round trip runs off the UI goroutine.
func (m Model) runQuestion(question string) tea.Cmd {
	svc := m.ai
	driver := m.driver
	schemaContext := m.schemaContext

	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		sql, err := svc.GenerateSQL(ctx, question, schemaContext)
		if err != nil {
			return queryResultMsg{question: question, duration: time.Since(start), err: err}
		}

		if err := drivers.ValidateReadOnly(sql); err != nil {
			return queryResultMsg{question: question, sql: sql, duration: time.Since(start), err: err}
		}

		ds, err := driver.ExecuteQuery(ctx, "Query Result", sql)
		return queryResultMsg{
			question: question,
			sql:      sql,
			dataset:  ds,
			duration: time.Since(start),
			err:      err,
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.TerminalWidth = msg.Width
		m.TerminalHeight = msg.Height
		m.layout()
		m.initialized = true
		return m, nil

	case chat.SubmitMsg:
		if m.querying {
			return m, nil
		}
		if m.ai == nil {
			m.Chat.Append(chat.Message{
				Role: chat.RoleError,
				Text: "No AI service configured. Set ANTHROPIC_API_KEY and restart.",
			})
			return m, nil
		}
		m.querying = true
		m.Chat.Append(chat.Message{Role: chat.RoleUser, Text: msg.Question})
		m.Chat.SetBusy(true)
		return m, m.runQuestion(msg.Question)

	case queryResultMsg:
		m.querying = false
		m.Chat.SetBusy(false)

		rowCount := int64(0)
		errText := ""
		if msg.err != nil {
			errText = msg.err.Error()
		} else if msg.dataset != nil {
			rowCount = int64(msg.dataset.Len())
		}
		if _, err := storage.Add(msg.question, msg.sql, msg.duration.Milliseconds(), rowCount, errText); err != nil {
			logger.Warn("Failed to record chat history", map[string]any{"error": err.Error()})
		}

		if msg.err != nil {
			logger.Error("Question failed", map[string]any{
				"question": msg.question,
				"error":    msg.err.Error(),
			})
			m.Chat.Append(chat.Message{Role: chat.RoleError, Text: "Error: " + msg.err.Error()})
			return m, nil
		}

		m.Chat.Append(chat.Message{Role: chat.RoleSQL, Text: msg.sql})
		m.Chat.Append(chat.Message{Role: chat.RoleAssistant, Text: ai.Respond(msg.question, msg.dataset)})

		m.engine.SetDataset(msg.dataset)
		m.Table.Refresh()
		if !msg.dataset.Empty() {
			m.setFocus(FocusTable)
		}
		return m, nil

	case table.ExpandCellMsg:
		m.Preview.SetSize(m.TerminalWidth, m.TerminalHeight)
		m.Preview.Show(msg.Cell)
		m.setFocus(FocusPreview)
		return m, nil

	case table.CopyCellMsg:
		if err := m.clipboard.Write(msg.Text); err != nil {
			logger.Error("Failed to copy to clipboard", map[string]any{"error": err.Error()})
			return m, m.Toast.ShowError("Copy failed: " + err.Error())
		}
		return m, m.Toast.ShowSuccess("Copied to clipboard")

	case tea.KeyMsg:
		if m.Help.Visible() {
			var cmd tea.Cmd
			m.Help, cmd = m.Help.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.Focus == FocusChat {
				m.setFocus(FocusTable)
			} else if m.Focus == FocusTable {
				m.setFocus(FocusChat)
			}
			return m, nil
		}

		switch m.Focus {
		case FocusPreview:
			var cmd tea.Cmd
			m.Preview, cmd = m.Preview.Update(msg)
			if !m.Preview.Visible() {
				m.engine.CloseExpanded()
				m.setFocus(FocusTable)
			}
			return m, cmd

		case FocusTable:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "x":
				return m, m.exportResult("csv")
			case "X":
				return m, m.exportResult("json")
			case "t":
				m.cycleTheme()
				return m, nil
			case "?":
				m.Help.Show()
				return m, nil
			}
			var cmd tea.Cmd
			m.Table, cmd = m.Table.Update(msg)
			return m, cmd

		default:
			var cmd tea.Cmd
			m.Chat, cmd = m.Chat.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.Toast, cmd = m.Toast.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// exportResult writes the current dataset to the export directory
func (m *Model) exportResult(format string) tea.Cmd {
	file := m.engine.Export(format)
	if file.Filename == "" {
		return m.Toast.ShowInfo("Nothing to export")
	}

	path, err := m.downloader.Download(file.Filename, file.Data)
	if err != nil {
		logger.Error("Export failed", map[string]any{
			"filename": file.Filename,
			"error":    err.Error(),
		})
		return m.Toast.ShowError("Export failed: " + err.Error())
	}

	logger.Info("Exported result", map[string]any{
		"path":  path,
		"bytes": len(file.Data),
	})
	return m.Toast.ShowSuccess(fmt.Sprintf("Saved %s", path))
}

func (m *Model) cycleTheme() {
	themes := theme.GetAvailableThemes()
	m.themeIndex = (m.themeIndex + 1) % len(themes)
	name := themes[m.themeIndex]
	theme.SetTheme(theme.GetThemeByName(name))

	m.config.SetTheme(name)
	if err := m.config.Save(); err != nil {
		logger.Warn("Failed to persist theme", map[string]any{"error": err.Error()})
	}
}

func (m *Model) setFocus(f Focus) {
	m.Focus = f
	m.Chat.SetFocused(f == FocusChat)
	m.Table.SetFocused(f == FocusTable)
}

// layout distributes the terminal between the chat and table panels
func (m *Model) layout() {
	width := m.TerminalWidth
	height := m.TerminalHeight

	headerHeight := 1
	footerHeight := 1
	body := max(4, height-headerHeight-footerHeight)

	chatHeight := body * 2 / 5
	tableHeight := body - chatHeight

	m.Chat.SetSize(max(20, width-2), max(3, chatHeight-2))
	m.Table.SetSize(max(20, width-2), max(4, tableHeight-2))
	m.Preview.SetSize(width, height)
	m.Help.SetSize(width, height)
	m.Toast.SetSize(width, height)
}
