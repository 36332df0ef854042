// Package ingest builds the ESG database from the sectioned CSV export the
// original dataset ships as: one physical file where an all-caps line such
// as "EMISSION" starts a new logical section, and every section becomes its
// own table.
package ingest

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mohitpandey15/esg-chatbot/logger"
)

// monthColumns are coerced to numbers on load; everything else stays text.
var monthColumns = map[string]bool{
	"April": true, "May": true, "June": true, "July": true,
	"August": true, "September": true, "October": true, "November": true,
	"December": true, "January": true, "February": true, "March": true,
	"YOD": true,
}

// Result summarizes a completed load.
type Result struct {
	Tables []string
	Rows   int
}

type section struct {
	name string
	rows [][]string
}

// LoadFile reads the CSV at path and loads it into db, replacing any
// existing tables of the same names.
func LoadFile(db *sql.DB, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(db, f)
}

// Load parses the sectioned CSV and creates one table per section.
func Load(db *sql.DB, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv has no data rows")
	}

	headers := cleanHeaders(records[0])
	sections := splitSections(records[1:])

	result := &Result{}
	for _, sec := range sections {
		if len(sec.rows) == 0 {
			continue
		}
		table := TableName(sec.name)
		if err := createTable(db, table, headers); err != nil {
			return nil, fmt.Errorf("create table %s: %w", table, err)
		}
		n, err := insertRows(db, table, headers, sec.rows)
		if err != nil {
			return nil, fmt.Errorf("insert into %s: %w", table, err)
		}

		logger.Info("Created table from CSV section", map[string]any{
			"table": table,
			"rows":  n,
		})
		result.Tables = append(result.Tables, table)
		result.Rows += n
	}
	return result, nil
}

// cleanHeaders trims header names and generates placeholders for blanks.
func cleanHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("col_%d", i)
		}
		headers[i] = h
	}
	return headers
}

// splitSections walks the data rows, starting a new section at every
// header-like row: first field set, all other fields empty, all caps, at
// most three words. Rows before the first header belong to the default
// PRODUCTION section.
func splitSections(rows [][]string) []section {
	sections := []section{{name: "PRODUCTION"}}
	current := &sections[0]

	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if isSectionHeader(row) {
			name := strings.TrimSpace(row[0])
			sections = append(sections, section{name: name})
			current = &sections[len(sections)-1]
			continue
		}
		current.rows = append(current.rows, row)
	}
	return sections
}

func isSectionHeader(row []string) bool {
	first := strings.TrimSpace(row[0])
	if first == "" {
		return false
	}
	for _, field := range row[1:] {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	if first != strings.ToUpper(first) || first == strings.ToLower(first) {
		return false
	}
	return len(strings.Fields(first)) <= 3
}

// TableName normalizes a section name into a table name: lower-cased,
// spaces to underscores, "&" spelled out.
func TableName(sectionName string) string {
	name := strings.ToLower(strings.TrimSpace(sectionName))
	name = strings.ReplaceAll(name, "&", "and")
	name = strings.Join(strings.Fields(name), "_")
	return name
}

func createTable(db *sql.DB, table string, headers []string) error {
	if _, err := db.Exec("DROP TABLE IF EXISTS " + quote(table)); err != nil {
		return err
	}

	cols := make([]string, len(headers))
	for i, h := range headers {
		colType := "TEXT"
		if monthColumns[h] {
			colType = "REAL"
		}
		cols[i] = quote(h) + " " + colType
	}
	_, err := db.Exec("CREATE TABLE " + quote(table) + " (" + strings.Join(cols, ", ") + ")")
	return err
}

func insertRows(db *sql.DB, table string, headers []string, rows [][]string) (int, error) {
	placeholders := make([]string, len(headers))
	quoted := make([]string, len(headers))
	for i, h := range headers {
		placeholders[i] = "?"
		quoted[i] = quote(h)
	}
	stmt, err := db.Prepare(
		"INSERT INTO " + quote(table) + " (" + strings.Join(quoted, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")",
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, row := range rows {
		args := make([]any, len(headers))
		for i, h := range headers {
			args[i] = cellValue(row, i, monthColumns[h])
		}
		if _, err := stmt.Exec(args...); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// cellValue converts a raw CSV field for insertion. Month columns become
// floats, with unparsable values stored as NULL; empty fields are NULL
// everywhere.
func cellValue(row []string, idx int, numeric bool) any {
	if idx >= len(row) {
		return nil
	}
	s := strings.TrimSpace(row[idx])
	if s == "" {
		return nil
	}
	if numeric {
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return nil
		}
		return f
	}
	return s
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
