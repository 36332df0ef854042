package chat

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mohitpandey15/esg-chatbot/ui/theme"
)

// Role identifies who produced a transcript message
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
	RoleSQL
	RoleError
)

// Message is one entry in the chat transcript
type Message struct {
	Role Role
	Text string
}

// SubmitMsg is emitted when the user submits a question
type SubmitMsg struct {
	Question string
}

// Model holds the chat transcript and the question input
type Model struct {
	input       textinput.Model
	viewport    viewport.Model
	messages    []Message
	suggestions []string
	lexer       chroma.Lexer

	width   int
	height  int
	focused bool
	busy    bool
}

// New creates the chat panel. Suggestions are shown while the transcript is
// empty.
func New(suggestions []string) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about the ESG data..."
	ti.CharLimit = 500
	ti.Focus()

	return Model{
		input:       ti,
		viewport:    viewport.New(60, 10),
		suggestions: suggestions,
		lexer:       lexers.Get("sql"),
		focused:     true,
	}
}

// SetSize sets the panel dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(10, width-4)
	m.viewport.Width = width
	m.viewport.Height = max(1, height-2)
	m.refreshViewport()
}

// SetFocused moves keyboard focus to or away from the input
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
	if focused {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// Focused returns whether the input has focus
func (m Model) Focused() bool {
	return m.focused
}

// SetBusy toggles the thinking indicator and blocks submissions
func (m *Model) SetBusy(busy bool) {
	m.busy = busy
	m.refreshViewport()
}

// Append adds a message to the transcript and scrolls to the bottom
func (m *Model) Append(msg Message) {
	m.messages = append(m.messages, msg)
	m.refreshViewport()
}

// Update handles input
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(m.input.Value())
			if question == "" || m.busy {
				return m, nil
			}
			m.input.SetValue("")
			return m, func() tea.Msg { return SubmitMsg{Question: question} }
		case "pgup":
			m.viewport.LineUp(3)
			return m, nil
		case "pgdown":
			m.viewport.LineDown(3)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the transcript above the input line
func (m Model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewport.View(),
		"",
		m.input.View(),
	)
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	t := theme.Current

	if len(m.messages) == 0 {
		var b strings.Builder
		b.WriteString(t.ChatAssistant.Render("Ask a question about the plant's ESG data.") + "\n\n")
		b.WriteString(t.ChatHint.Render("Try one of these:") + "\n")
		for _, s := range m.suggestions {
			b.WriteString(t.ChatHint.Render("  • "+s) + "\n")
		}
		return b.String()
	}

	var lines []string
	for _, msg := range m.messages {
		switch msg.Role {
		case RoleUser:
			lines = append(lines, t.ChatUser.Render("You: ")+t.ChatAssistant.Render(msg.Text))
		case RoleSQL:
			lines = append(lines, t.ChatHint.Render("SQL: ")+m.highlightSQL(msg.Text))
		case RoleError:
			lines = append(lines, t.ChatError.Render(msg.Text))
		default:
			lines = append(lines, t.ChatAssistant.Render(msg.Text))
		}
		lines = append(lines, "")
	}

	if m.busy {
		lines = append(lines, t.ChatHint.Render("Thinking..."))
	}

	return strings.Join(lines, "\n")
}

// highlightSQL renders a statement with chroma token coloring
func (m Model) highlightSQL(text string) string {
	t := theme.Current
	if m.lexer == nil {
		return t.ChatSQL.Render(text)
	}

	styleMap := map[chroma.TokenType]lipgloss.Style{
		chroma.Keyword:       lipgloss.NewStyle().Foreground(t.Colors.Primary).Bold(true),
		chroma.KeywordType:   lipgloss.NewStyle().Foreground(t.Colors.Primary),
		chroma.Literal:       lipgloss.NewStyle().Foreground(t.Colors.Success),
		chroma.LiteralString: lipgloss.NewStyle().Foreground(t.Colors.Success),
		chroma.LiteralNumber: lipgloss.NewStyle().Foreground(t.Colors.Warning),
		chroma.Comment:       lipgloss.NewStyle().Foreground(t.Colors.ForegroundDim).Italic(true),
		chroma.Name:          lipgloss.NewStyle().Foreground(t.Colors.Foreground),
		chroma.NameFunction:  lipgloss.NewStyle().Foreground(t.Colors.Primary),
		chroma.NameBuiltin:   lipgloss.NewStyle().Foreground(t.Colors.Primary),
		chroma.Operator:      lipgloss.NewStyle().Foreground(t.Colors.Warning),
		chroma.Punctuation:   lipgloss.NewStyle().Foreground(t.Colors.ForegroundDim),
	}

	iterator, err := m.lexer.Tokenise(nil, text)
	if err != nil {
		return t.ChatSQL.Render(text)
	}

	var b strings.Builder
	for token := iterator(); token != chroma.EOF; token = iterator() {
		style, ok := styleMap[token.Type]
		if !ok {
			style = lipgloss.NewStyle().Foreground(t.Colors.Foreground)
		}
		b.WriteString(style.Render(token.Value))
	}
	return b.String()
}
