package drivers

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/xo/dburl"

	"github.com/mohitpandey15/esg-chatbot/grid"
	"github.com/mohitpandey15/esg-chatbot/logger"
)

type MySQL struct {
	Connection *sql.DB
}

func (db *MySQL) Connect(urlstr string) (err error) {
	db.Connection, err = dburl.Open(urlstr)
	if err != nil {
		return err
	}
	if err := db.Connection.Ping(); err != nil {
		return err
	}

	logger.Debug("Connected to MySQL database", map[string]any{
		"url": urlstr,
	})
	return nil
}

func (db *MySQL) TestConnection(urlstr string) error {
	conn, err := dburl.Open(urlstr)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.Ping()
}

func (db *MySQL) ExecuteQuery(ctx context.Context, title, query string) (*grid.Dataset, error) {
	rows, err := db.Connection.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return datasetFromRows(title, rows)
}

func (db *MySQL) Tables() ([]string, error) {
	query := "SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() ORDER BY TABLE_NAME"
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

func (db *MySQL) TableColumns(table string) ([]ColumnInfo, error) {
	query := `
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE, COLUMN_KEY, COALESCE(COLUMN_DEFAULT, '')
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`
	rows, err := db.Connection.Query(query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		var name, dataType, nullable, key, defaultValue string
		if err := rows.Scan(&name, &dataType, &nullable, &key, &defaultValue); err != nil {
			return nil, err
		}
		columns = append(columns, ColumnInfo{
			Name:         name,
			DataType:     dataType,
			Nullable:     nullable == "YES",
			IsPrimaryKey: key == "PRI",
			DefaultValue: defaultValue,
		})
	}
	return columns, rows.Err()
}

func (db *MySQL) Close() error {
	if db.Connection != nil {
		return db.Connection.Close()
	}
	return nil
}
