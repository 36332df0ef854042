package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration: environment-supplied
// connection settings plus user preferences persisted as JSON under
// ~/.config/esg-chatbot.
type Config struct {
	// Environment.
	DatabaseURL     string `json:"-"`
	CSVPath         string `json:"-"`
	AnthropicAPIKey string `json:"-"`
	Model           string `json:"-"`
	MaxTokens       int    `json:"-"`
	LogFile         string `json:"-"`

	// Persisted preferences.
	Theme     string `json:"theme"`
	PageSize  int    `json:"page_size"`
	MaxRows   int    `json:"max_rows"`
	ExportDir string `json:"export_dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DatabaseURL: "sqlite://esg_data.db",
		CSVPath:     "Steel_Manufacturing_ESG_data.csv",
		Model:       "claude-haiku-4-5-20251001",
		MaxTokens:   2000,
		LogFile:     "debug.log",
		Theme:       "default",
		PageSize:    10,
		MaxRows:     0,
		ExportDir:   ".",
	}
}

// configDir returns the config directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "esg-chatbot"), nil
}

func settingsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

// Load builds the configuration: defaults, then the persisted settings
// file, then environment variables (a .env file is honored when present).
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	path, err := settingsPath()
	if err == nil {
		if data, err := os.ReadFile(path); err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return DefaultConfig(), err
			}
		}
	}

	cfg.applyEnv()
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("ESG_CSV"); v != "" {
		c.CSVPath = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.AnthropicAPIKey = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxTokens = n
		}
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.LogFile = v
	}
}

// Save writes the preference portion of the config to disk.
func (c *Config) Save() error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := settingsPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SetTheme updates the theme in config.
func (c *Config) SetTheme(themeName string) {
	c.Theme = themeName
}
