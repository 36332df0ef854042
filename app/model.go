package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mohitpandey15/esg-chatbot/ai"
	"github.com/mohitpandey15/esg-chatbot/config"
	"github.com/mohitpandey15/esg-chatbot/drivers"
	"github.com/mohitpandey15/esg-chatbot/grid"
	"github.com/mohitpandey15/esg-chatbot/ui/cellpreview"
	"github.com/mohitpandey15/esg-chatbot/ui/chat"
	"github.com/mohitpandey15/esg-chatbot/ui/help"
	"github.com/mohitpandey15/esg-chatbot/ui/table"
	"github.com/mohitpandey15/esg-chatbot/ui/theme"
	"github.com/mohitpandey15/esg-chatbot/ui/toast"
)

// Focus represents which panel is currently focused
type Focus int

const (
	FocusChat Focus = iota
	FocusTable
	FocusPreview
)

type Model struct {
	Chat    chat.Model
	Table   table.Model
	Preview cellpreview.Model
	Help    help.Model
	Toast   toast.Model
	Focus   Focus

	engine     *grid.Engine
	driver     drivers.Driver
	ai         *ai.Service
	clipboard  grid.ClipboardWriter
	downloader grid.FileDownloader
	config     *config.Config

	schemaContext string
	querying      bool

	TerminalWidth  int
	TerminalHeight int

	themeIndex  int
	initialized bool
}

// New wires the application model. The driver must already be connected;
// the AI service may be nil, in which case questions are rejected with a
// hint to set the API key.
func New(cfg *config.Config, driver drivers.Driver, svc *ai.Service) Model {
	theme.SetTheme(theme.GetThemeByName(cfg.Theme))

	themeIdx := 0
	for i, t := range theme.GetAvailableThemes() {
		if t == cfg.Theme {
			themeIdx = i
			break
		}
	}

	engine := grid.NewEngine(grid.Config{
		MaxRows:  cfg.MaxRows,
		PageSize: cfg.PageSize,
	})

	schemaContext, _ := drivers.SchemaContext(driver)

	c := chat.New(ai.Suggestions())
	c.SetFocused(true)

	t := table.New(engine)
	t.SetFocused(false)

	return Model{
		Chat:          c,
		Table:         t,
		Preview:       cellpreview.New(),
		Help:          help.New(),
		Toast:         toast.New(),
		Focus:         FocusChat,
		engine:        engine,
		driver:        driver,
		ai:            svc,
		clipboard:     systemClipboard{},
		downloader:    dirDownloader{dir: cfg.ExportDir},
		config:        cfg,
		schemaContext: schemaContext,
		themeIndex:    themeIdx,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}
