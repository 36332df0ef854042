package ai

import (
	"fmt"
	"strings"

	"github.com/mohitpandey15/esg-chatbot/grid"
)

// SystemPrompt builds the instruction block sent with every question. The
// schema context lists the available tables and columns so the model can
// target real names.
func SystemPrompt(schemaContext string) string {
	return fmt.Sprintf(`You are a SQL expert for an ESG (Environmental, Social, Governance) database of a steel manufacturing plant.

Database schema:
%s

Rules:
- Respond with a single SQLite SELECT statement and nothing else.
- Never use INSERT, UPDATE, DELETE, DROP, ALTER or any other statement that modifies data.
- Use only the tables and columns listed above.
- Month columns hold numeric values; NULL means no measurement.
- Add LIMIT 100 unless the question asks for a specific number of rows.
- When asked for trends, order by the natural month sequence April through March.

Examples:
Q: What are the total CO2 emissions?
A: SELECT parameters, SUM(april + may + june + july + august + september + october + november + december + january + february + march) AS total FROM emission WHERE parameters LIKE '%%CO2%%' GROUP BY parameters LIMIT 100

Q: Show me steel production data
A: SELECT * FROM production LIMIT 100`, schemaContext)
}

// Respond produces a local summary of a query result for the chat
// transcript. Five or fewer records print in full; larger sets print the
// total plus the first three records limited to five columns each. It never
// calls the API.
func Respond(question string, ds *grid.Dataset) string {
	if ds == nil || ds.Empty() {
		return fmt.Sprintf("No data found for your query: '%s'", question)
	}

	records := ds.Records()
	columns := ds.Columns()

	var b strings.Builder
	if len(records) <= 5 {
		fmt.Fprintf(&b, "Here are the results for '%s':\n", question)
		for i, rec := range records {
			fmt.Fprintf(&b, "\nRecord %d:\n", i+1)
			writeRecord(&b, rec, columns)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "Here's a summary for '%s':\n\n", question)
	fmt.Fprintf(&b, "Total records found: %d\n\n", len(records))
	b.WriteString("Sample of first 3 records:\n")

	sampleColumns := columns
	if len(sampleColumns) > 5 {
		sampleColumns = sampleColumns[:5]
	}
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "\nRecord %d:\n", i+1)
		writeRecord(&b, records[i], sampleColumns)
	}

	fmt.Fprintf(&b, "\n... and %d more records", len(records)-3)
	return b.String()
}

// writeRecord prints the non-null fields of a record, one per line
func writeRecord(b *strings.Builder, rec grid.Record, columns []string) {
	for _, col := range columns {
		v := rec.Value(col)
		if v.IsNull() {
			continue
		}
		fmt.Fprintf(b, "  %s: %s\n", col, v.String())
	}
}
