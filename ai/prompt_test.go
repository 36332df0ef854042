package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohitpandey15/esg-chatbot/grid"
)

func TestCleanSQLStripsFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"SELECT * FROM production", "SELECT * FROM production"},
		{"```sql\nSELECT 1\n```", "SELECT 1"},
		{"```\nSELECT 1\n```", "SELECT 1"},
		{"  SELECT 1  ", "SELECT 1"},
		{"```sql\nSELECT a\nFROM b\n```", "SELECT a\nFROM b"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CleanSQL(c.in))
	}
}

func TestSystemPromptIncludesSchema(t *testing.T) {
	prompt := SystemPrompt("Table: production\nColumns: parameters (TEXT), april (REAL)")
	assert.Contains(t, prompt, "Table: production")
	assert.Contains(t, prompt, "SELECT")
	assert.Contains(t, prompt, "LIMIT 100")
}

func TestRespondSmallResultPrintsEveryRecord(t *testing.T) {
	ds := grid.NewDataset("result", []string{"parameters", "april", "may"}, []grid.Record{
		{"parameters": grid.Text("Liquid Steel"), "april": grid.Number(1050), "may": grid.Null()},
		{"parameters": grid.Text("Rolled Coils"), "april": grid.Number(700), "may": grid.Number(720)},
	})

	msg := Respond("show production", ds)
	assert.Contains(t, msg, "Here are the results for 'show production'")
	assert.Contains(t, msg, "Record 1:")
	assert.Contains(t, msg, "Record 2:")
	assert.Contains(t, msg, "  parameters: Liquid Steel")
	assert.Contains(t, msg, "  april: 1050")
	assert.Contains(t, msg, "  may: 720")
	// Null fields are skipped, not printed as empty.
	assert.NotContains(t, msg, "may: \n")
	assert.NotContains(t, msg, "more records")
}

func TestRespondLargeResultSamplesThreeRecords(t *testing.T) {
	columns := []string{"c1", "c2", "c3", "c4", "c5", "c6"}
	var records []grid.Record
	for i := 0; i < 8; i++ {
		rec := grid.Record{}
		for _, c := range columns {
			rec[c] = grid.Number(float64(i))
		}
		records = append(records, rec)
	}
	ds := grid.NewDataset("result", columns, records)

	msg := Respond("everything", ds)
	assert.Contains(t, msg, "Total records found: 8")
	assert.Contains(t, msg, "Sample of first 3 records:")
	assert.Contains(t, msg, "Record 3:")
	assert.NotContains(t, msg, "Record 4:")
	assert.Contains(t, msg, "... and 5 more records")
	// Sample records are limited to the first five columns.
	assert.Contains(t, msg, "c5:")
	assert.NotContains(t, msg, "c6:")
}

func TestRespondEmptyResult(t *testing.T) {
	ds := grid.NewDataset("result", []string{"a"}, nil)
	assert.Contains(t, Respond("anything", ds), "No data found")
	assert.Contains(t, Respond("anything", nil), "No data found")
}

func TestSuggestionsNotEmpty(t *testing.T) {
	s := Suggestions()
	assert.NotEmpty(t, s)
	for _, q := range s {
		assert.NotEmpty(t, q)
	}
}
