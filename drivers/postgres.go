package drivers

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/xo/dburl"

	"github.com/mohitpandey15/esg-chatbot/grid"
	"github.com/mohitpandey15/esg-chatbot/logger"
)

type PostgreSQL struct {
	Connection *sql.DB
}

func (db *PostgreSQL) Connect(urlstr string) (err error) {
	db.Connection, err = dburl.Open(urlstr)
	if err != nil {
		return err
	}
	if err := db.Connection.Ping(); err != nil {
		return err
	}

	logger.Debug("Connected to PostgreSQL database", map[string]any{
		"url": urlstr,
	})
	return nil
}

func (db *PostgreSQL) TestConnection(urlstr string) error {
	conn, err := dburl.Open(urlstr)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.Ping()
}

func (db *PostgreSQL) ExecuteQuery(ctx context.Context, title, query string) (*grid.Dataset, error) {
	rows, err := db.Connection.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return datasetFromRows(title, rows)
}

func (db *PostgreSQL) Tables() ([]string, error) {
	query := `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name
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

func (db *PostgreSQL) TableColumns(table string) ([]ColumnInfo, error) {
	query := `
		SELECT c.column_name, c.data_type, c.is_nullable, COALESCE(c.column_default, ''),
		       EXISTS (
		           SELECT 1 FROM information_schema.key_column_usage kcu
		           JOIN information_schema.table_constraints tc
		             ON tc.constraint_name = kcu.constraint_name
		           WHERE tc.constraint_type = 'PRIMARY KEY'
		             AND kcu.table_name = c.table_name
		             AND kcu.column_name = c.column_name
		       )
		FROM information_schema.columns c
		WHERE c.table_schema = 'public' AND c.table_name = $1
		ORDER BY c.ordinal_position
	`
	rows, err := db.Connection.Query(query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		var name, dataType, nullable, defaultValue string
		var pk bool
		if err := rows.Scan(&name, &dataType, &nullable, &defaultValue, &pk); err != nil {
			return nil, err
		}
		columns = append(columns, ColumnInfo{
			Name:         name,
			DataType:     dataType,
			Nullable:     nullable == "YES",
			IsPrimaryKey: pk,
			DefaultValue: defaultValue,
		})
	}
	return columns, rows.Err()
}

func (db *PostgreSQL) Close() error {
	if db.Connection != nil {
		return db.Connection.Close()
	}
	return nil
}
