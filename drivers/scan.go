package drivers

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mohitpandey15/esg-chatbot/grid"
)

// datasetFromRows drains a result set into a grid dataset, preserving the
// result's column order and converting each cell to a tagged scalar.
func datasetFromRows(title string, rows *sql.Rows) (*grid.Dataset, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var records []grid.Record
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		rec := make(grid.Record, len(columns))
		for i, col := range columns {
			rec[col] = toValue(values[i])
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grid.NewDataset(title, columns, records), nil
}

// toValue maps a database/sql scan result onto the grid's scalar variant.
// Timestamps become their RFC 3339 date form so the grid classifies them as
// dates.
func toValue(v any) grid.Value {
	switch t := v.(type) {
	case nil:
		return grid.Null()
	case bool:
		return grid.Bool(t)
	case int64:
		return grid.Number(float64(t))
	case float64:
		return grid.Number(t)
	case []byte:
		return grid.Text(string(t))
	case string:
		return grid.Text(t)
	case time.Time:
		return grid.Text(t.Format(time.RFC3339))
	default:
		return grid.Text(fmt.Sprint(t))
	}
}
