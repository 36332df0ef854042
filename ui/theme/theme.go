package theme

import "github.com/charmbracelet/lipgloss"

// Colors defines all the colors used in the application
type Colors struct {
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color

	SelectionBg lipgloss.Color
	SelectionFg lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

type Theme struct {
	Name   string
	Colors Colors

	Header          lipgloss.Style
	Footer          lipgloss.Style
	Title           lipgloss.Style
	BorderFocused   lipgloss.Style
	BorderUnfocused lipgloss.Style

	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	TableNumber   lipgloss.Style
	TableNull     lipgloss.Style
	TableSelected lipgloss.Style
	TableBorder   lipgloss.Style

	PageActive   lipgloss.Style
	PageInactive lipgloss.Style

	ChatUser      lipgloss.Style
	ChatAssistant lipgloss.Style
	ChatSQL       lipgloss.Style
	ChatError     lipgloss.Style
	ChatHint      lipgloss.Style

	StatusBar lipgloss.Style
}

// Current holds the active theme
var Current *Theme

func init() {
	Current = DefaultTheme()
}

// SetTheme changes the current theme
func SetTheme(t *Theme) {
	Current = t
}

// GetTheme returns the current theme
func GetTheme() *Theme {
	return Current
}

// buildStyles creates all the pre-built styles from colors
func buildStyles(name string, c Colors) *Theme {
	t := &Theme{
		Name:   name,
		Colors: c,
	}

	t.Header = lipgloss.NewStyle().
		Foreground(c.Foreground).
		Background(c.Primary).
		Bold(true).
		Padding(0, 2)

	t.Footer = lipgloss.NewStyle().
		Foreground(c.Foreground).
		Background(c.Primary).
		Padding(0, 2)

	t.Title = lipgloss.NewStyle().
		Foreground(c.Foreground).
		Background(c.Primary).
		Bold(true)

	t.BorderFocused = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.BorderFocused)

	t.BorderUnfocused = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.BorderUnfocused)

	t.TableHeader = lipgloss.NewStyle().
		Foreground(c.Foreground).
		Background(c.Primary).
		Bold(true)

	t.TableCell = lipgloss.NewStyle().
		Foreground(c.Foreground)

	t.TableNumber = lipgloss.NewStyle().
		Foreground(c.Accent)

	t.TableNull = lipgloss.NewStyle().
		Foreground(c.ForegroundDim).
		Italic(true)

	t.TableSelected = lipgloss.NewStyle().
		Foreground(c.SelectionFg).
		Background(c.SelectionBg)

	t.TableBorder = lipgloss.NewStyle().
		Foreground(c.BorderUnfocused)

	t.PageActive = lipgloss.NewStyle().
		Foreground(c.SelectionFg).
		Background(c.Primary).
		Bold(true).
		Padding(0, 1)

	t.PageInactive = lipgloss.NewStyle().
		Foreground(c.ForegroundDim).
		Padding(0, 1)

	t.ChatUser = lipgloss.NewStyle().
		Foreground(c.Accent).
		Bold(true)

	t.ChatAssistant = lipgloss.NewStyle().
		Foreground(c.Foreground)

	t.ChatSQL = lipgloss.NewStyle().
		Foreground(c.Secondary)

	t.ChatError = lipgloss.NewStyle().
		Foreground(c.Error)

	t.ChatHint = lipgloss.NewStyle().
		Foreground(c.ForegroundDim).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(c.ForegroundDim)

	return t
}

// DefaultTheme returns the default purple theme
func DefaultTheme() *Theme {
	return buildStyles("default", Colors{
		Background:      lipgloss.Color("#1a1a2e"),
		Foreground:      lipgloss.Color("#FAFAFA"),
		ForegroundDim:   lipgloss.Color("#888888"),
		Primary:         lipgloss.Color("#7D56F4"),
		Secondary:       lipgloss.Color("#5A4FCF"),
		Accent:          lipgloss.Color("#9D7BFF"),
		BorderFocused:   lipgloss.Color("#7D56F4"),
		BorderUnfocused: lipgloss.Color("#3C3C3C"),
		SelectionBg:     lipgloss.Color("#5A4FCF"),
		SelectionFg:     lipgloss.Color("#FAFAFA"),
		Success:         lipgloss.Color("#50FA7B"),
		Warning:         lipgloss.Color("#FFB86C"),
		Error:           lipgloss.Color("#FF5555"),
		Info:            lipgloss.Color("#8BE9FD"),
	})
}

// DraculaTheme returns the Dracula color theme
func DraculaTheme() *Theme {
	return buildStyles("dracula", Colors{
		Background:      lipgloss.Color("#282a36"),
		Foreground:      lipgloss.Color("#f8f8f2"),
		ForegroundDim:   lipgloss.Color("#6272a4"),
		Primary:         lipgloss.Color("#bd93f9"),
		Secondary:       lipgloss.Color("#ff79c6"),
		Accent:          lipgloss.Color("#8be9fd"),
		BorderFocused:   lipgloss.Color("#bd93f9"),
		BorderUnfocused: lipgloss.Color("#44475a"),
		SelectionBg:     lipgloss.Color("#44475a"),
		SelectionFg:     lipgloss.Color("#f8f8f2"),
		Success:         lipgloss.Color("#50fa7b"),
		Warning:         lipgloss.Color("#ffb86c"),
		Error:           lipgloss.Color("#ff5555"),
		Info:            lipgloss.Color("#8be9fd"),
	})
}

// NordTheme returns the Nord color theme
func NordTheme() *Theme {
	return buildStyles("nord", Colors{
		Background:      lipgloss.Color("#2e3440"),
		Foreground:      lipgloss.Color("#eceff4"),
		ForegroundDim:   lipgloss.Color("#4c566a"),
		Primary:         lipgloss.Color("#5e81ac"),
		Secondary:       lipgloss.Color("#81a1c1"),
		Accent:          lipgloss.Color("#88c0d0"),
		BorderFocused:   lipgloss.Color("#88c0d0"),
		BorderUnfocused: lipgloss.Color("#3b4252"),
		SelectionBg:     lipgloss.Color("#434c5e"),
		SelectionFg:     lipgloss.Color("#eceff4"),
		Success:         lipgloss.Color("#a3be8c"),
		Warning:         lipgloss.Color("#ebcb8b"),
		Error:           lipgloss.Color("#bf616a"),
		Info:            lipgloss.Color("#81a1c1"),
	})
}

// GruvboxTheme returns the Gruvbox dark theme
func GruvboxTheme() *Theme {
	return buildStyles("gruvbox", Colors{
		Background:      lipgloss.Color("#282828"),
		Foreground:      lipgloss.Color("#ebdbb2"),
		ForegroundDim:   lipgloss.Color("#928374"),
		Primary:         lipgloss.Color("#fe8019"),
		Secondary:       lipgloss.Color("#fabd2f"),
		Accent:          lipgloss.Color("#8ec07c"),
		BorderFocused:   lipgloss.Color("#fe8019"),
		BorderUnfocused: lipgloss.Color("#3c3836"),
		SelectionBg:     lipgloss.Color("#504945"),
		SelectionFg:     lipgloss.Color("#ebdbb2"),
		Success:         lipgloss.Color("#b8bb26"),
		Warning:         lipgloss.Color("#fabd2f"),
		Error:           lipgloss.Color("#fb4934"),
		Info:            lipgloss.Color("#83a598"),
	})
}

// GetAvailableThemes returns a list of all available theme names
func GetAvailableThemes() []string {
	return []string{
		"default",
		"dracula",
		"nord",
		"gruvbox",
	}
}

// GetThemeByName returns a theme by its name
func GetThemeByName(name string) *Theme {
	switch name {
	case "dracula":
		return DraculaTheme()
	case "nord":
		return NordTheme()
	case "gruvbox":
		return GruvboxTheme()
	default:
		return DefaultTheme()
	}
}
