package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mohitpandey15/esg-chatbot/ai"
	"github.com/mohitpandey15/esg-chatbot/app"
	"github.com/mohitpandey15/esg-chatbot/config"
	"github.com/mohitpandey15/esg-chatbot/drivers"
	"github.com/mohitpandey15/esg-chatbot/ingest"
	"github.com/mohitpandey15/esg-chatbot/internal/version"
	"github.com/mohitpandey15/esg-chatbot/logger"
	"github.com/mohitpandey15/esg-chatbot/storage"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Println("esg-chatbot", version.Version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		os.Exit(1)
	}

	// Setup logger
	if err := logger.SetFile(cfg.LogFile); err != nil {
		fmt.Println("Failed to setup logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Chat history storage (SQLite database)
	if err := storage.Init(""); err != nil {
		fmt.Println("Failed to initialize storage:", err)
		os.Exit(1)
	}
	defer storage.Close()

	driver, err := drivers.Open(cfg.DatabaseURL)
	if err != nil {
		fmt.Println("Failed to connect to database:", err)
		os.Exit(1)
	}
	defer driver.Close()

	// Load the ESG spreadsheet into the database when present. A missing
	// file is fine when the database was populated on a previous run.
	if cfg.CSVPath != "" {
		if sqlite, ok := driver.(*drivers.SQLite); ok {
			if _, err := os.Stat(cfg.CSVPath); err == nil {
				result, err := ingest.LoadFile(sqlite.DB(), cfg.CSVPath)
				if err != nil {
					fmt.Println("Failed to load CSV:", err)
					os.Exit(1)
				}
				logger.Info("Loaded ESG data", map[string]any{
					"tables": result.Tables,
					"rows":   result.Rows,
				})
			}
		}
	}

	svc, err := ai.New(cfg.AnthropicAPIKey, cfg.Model, cfg.MaxTokens)
	if err != nil {
		logger.Warn("AI service unavailable", map[string]any{"error": err.Error()})
		svc = nil
	}

	p := tea.NewProgram(
		app.New(cfg, driver, svc),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		os.Exit(1)
	}
}
