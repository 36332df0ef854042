package drivers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mohitpandey15/esg-chatbot/grid"
	"github.com/mohitpandey15/esg-chatbot/logger"
	_ "modernc.org/sqlite"
)

type SQLite struct {
	Connection *sql.DB
	FilePath   string
}

// sqliteFilePath extracts the file path from sqlite:// and file: URL forms.
func sqliteFilePath(urlstr string) (string, error) {
	path := strings.TrimPrefix(urlstr, "sqlite://")
	path = strings.TrimPrefix(path, "file:")
	path = strings.TrimPrefix(path, "//")
	if path == "" {
		return "", fmt.Errorf("SQLite database file path is required")
	}
	return path, nil
}

func (db *SQLite) Connect(urlstr string) error {
	path, err := sqliteFilePath(urlstr)
	if err != nil {
		return err
	}
	db.FilePath = path

	db.Connection, err = sql.Open("sqlite", "file:"+path)
	if err != nil {
		return err
	}

	if _, err := db.Connection.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}
	if err := db.Connection.Ping(); err != nil {
		return err
	}

	logger.Debug("Connected to SQLite database", map[string]any{
		"filePath": path,
	})
	return nil
}

func (db *SQLite) TestConnection(urlstr string) error {
	path, err := sqliteFilePath(urlstr)
	if err != nil {
		return err
	}

	conn, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.Ping()
}

// ExecuteQuery runs a SELECT and returns its result as a dataset.
func (db *SQLite) ExecuteQuery(ctx context.Context, title, query string) (*grid.Dataset, error) {
	logger.Debug("Executing query", map[string]any{
		"query": query,
	})

	rows, err := db.Connection.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return datasetFromRows(title, rows)
}

// Tables lists user tables, skipping SQLite internals.
func (db *SQLite) Tables() ([]string, error) {
	query := `
		SELECT name FROM sqlite_master
		WHERE type='table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := db.Connection.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// TableColumns reads column metadata via PRAGMA table_info.
func (db *SQLite) TableColumns(table string) ([]ColumnInfo, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", quoteIdentifier(table))

	rows, err := db.Connection.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		var cid int
		var name string
		var dataType string
		var notnull int
		var defaultValue sql.NullString
		var pk int

		if err := rows.Scan(&cid, &name, &dataType, &notnull, &defaultValue, &pk); err != nil {
			return nil, err
		}

		columns = append(columns, ColumnInfo{
			Name:         name,
			DataType:     dataType,
			Nullable:     notnull == 0,
			IsPrimaryKey: pk == 1,
			DefaultValue: defaultValue.String,
		})
	}
	return columns, rows.Err()
}

func (db *SQLite) Close() error {
	if db.Connection != nil {
		return db.Connection.Close()
	}
	return nil
}

// DB exposes the raw handle for the CSV ingest step.
func (db *SQLite) DB() *sql.DB {
	return db.Connection
}

// quoteIdentifier safely quotes a table or column name for SQLite.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
