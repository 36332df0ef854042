package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB is the global database connection for app storage
var DB *sql.DB

// ChatEntry represents one question asked through the chat, the SQL it
// produced and how the query went.
type ChatEntry struct {
	ID        int64
	Question  string
	Query     string
	Duration  int64 // milliseconds
	RowCount  int64
	Error     string
	CreatedAt time.Time
}

// defaultPath returns the path to the SQLite history file
func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "esg-chatbot")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// Init opens the history database. An empty path uses the default
// location under the user config directory.
func Init(path string) error {
	var err error
	if path == "" {
		path, err = defaultPath()
		if err != nil {
			return err
		}
	}

	DB, err = sql.Open("sqlite", path)
	if err != nil {
		return err
	}

	return createTables()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

func createTables() error {
	schema := `
    CREATE TABLE IF NOT EXISTS chat_history (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        question TEXT NOT NULL,
        sql_query TEXT NOT NULL,
        duration INTEGER DEFAULT 0,
        row_count INTEGER DEFAULT 0,
        error TEXT,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE INDEX IF NOT EXISTS idx_chat_history_created_at ON chat_history(created_at);
    `

	_, err := DB.Exec(schema)
	return err
}

// Add records a chat turn and returns its ID
func Add(question, query string, duration, rowCount int64, queryError string) (int64, error) {
	result, err := DB.Exec(
		"INSERT INTO chat_history (question, sql_query, duration, row_count, error) VALUES (?, ?, ?, ?, ?)",
		question, query, duration, rowCount, queryError,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Recent retrieves the latest chat entries (most recent first)
func Recent(limit int) ([]ChatEntry, error) {
	rows, err := DB.Query(
		"SELECT id, question, sql_query, duration, row_count, error, created_at FROM chat_history ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ChatEntry
	for rows.Next() {
		var e ChatEntry
		var errStr sql.NullString
		if err := rows.Scan(&e.ID, &e.Question, &e.Query, &e.Duration, &e.RowCount, &errStr, &e.CreatedAt); err != nil {
			return nil, err
		}
		if errStr.Valid {
			e.Error = errStr.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes all chat history
func Clear() error {
	_, err := DB.Exec("DELETE FROM chat_history")
	return err
}
