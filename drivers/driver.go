package drivers

import (
	"context"
	"fmt"
	"strings"

	"github.com/mohitpandey15/esg-chatbot/grid"
)

const (
	DriverSQLite     string = "sqlite"
	DriverMySQL      string = "mysql"
	DriverPostgreSQL string = "postgres"
)

// Driver is a connection to the ESG database. Query results come back as
// grid datasets ready for the table engine.
type Driver interface {
	Connect(urlstr string) error
	TestConnection(urlstr string) error
	ExecuteQuery(ctx context.Context, title, query string) (*grid.Dataset, error)
	Tables() ([]string, error)
	TableColumns(table string) ([]ColumnInfo, error)
	Close() error
}

// ErrNotSelect is returned when a generated statement is anything other
// than a SELECT. Only read queries reach the database through the chat
// path.
var ErrNotSelect = fmt.Errorf("only SELECT queries are allowed")

// ValidateReadOnly rejects any statement that does not start with SELECT.
func ValidateReadOnly(query string) error {
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") {
		return ErrNotSelect
	}
	return nil
}

// maxSchemaTables caps how many tables go into the LLM prompt context.
const maxSchemaTables = 10

// SchemaContext builds the compact schema description handed to the SQL
// generator: one "Table: name / Columns: ..." block per table.
func SchemaContext(d Driver) (string, error) {
	tables, err := d.Tables()
	if err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}
	if len(tables) > maxSchemaTables {
		tables = tables[:maxSchemaTables]
	}

	var b strings.Builder
	for _, table := range tables {
		columns, err := d.TableColumns(table)
		if err != nil {
			return "", fmt.Errorf("columns of %s: %w", table, err)
		}
		parts := make([]string, len(columns))
		for i, col := range columns {
			parts[i] = fmt.Sprintf("%s (%s)", col.Name, col.DataType)
		}
		fmt.Fprintf(&b, "Table: %s\nColumns: %s\n\n", table, strings.Join(parts, ", "))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
