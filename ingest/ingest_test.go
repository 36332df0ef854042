package ingest

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const sampleCSV = `Parameter,Unit,April,May,YOD
Crude Steel,MT,1200,1300,2500
Rolled Steel,MT,900,"1,050",1950
EMISSION,,,,
Total CO2,tCO2,40000,41000,81000
WATER,,,,
Consumption,KL,15.5,not measured,15.5
`

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadSplitsSections(t *testing.T) {
	db := openTestDB(t)

	result, err := Load(db, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"production", "emission", "water"}, result.Tables)
	assert.Equal(t, 4, result.Rows)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM production").Scan(&count))
	assert.Equal(t, 2, count)

	var co2 float64
	require.NoError(t, db.QueryRow("SELECT April FROM emission").Scan(&co2))
	assert.Equal(t, 40000.0, co2)
}

func TestMonthCoercion(t *testing.T) {
	db := openTestDB(t)

	_, err := Load(db, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	// Grouped thousands parse; non-numeric month cells become NULL.
	var may float64
	require.NoError(t, db.QueryRow("SELECT May FROM production WHERE Parameter = 'Rolled Steel'").Scan(&may))
	assert.Equal(t, 1050.0, may)

	var nullMay sql.NullFloat64
	require.NoError(t, db.QueryRow("SELECT May FROM water").Scan(&nullMay))
	assert.False(t, nullMay.Valid)
}

func TestLoadReplacesExistingTables(t *testing.T) {
	db := openTestDB(t)

	_, err := Load(db, strings.NewReader(sampleCSV))
	require.NoError(t, err)
	_, err = Load(db, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM emission").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "production", TableName("PRODUCTION"))
	assert.Equal(t, "health_and_safety", TableName("HEALTH & SAFETY"))
	assert.Equal(t, "raw_material", TableName("  RAW MATERIAL "))
}

func TestSectionHeaderDetection(t *testing.T) {
	assert.True(t, isSectionHeader([]string{"EMISSION", "", ""}))
	assert.True(t, isSectionHeader([]string{"RAW MATERIAL", ""}))
	assert.False(t, isSectionHeader([]string{"EMISSION", "tCO2", ""}))
	assert.False(t, isSectionHeader([]string{"Total CO2", "", ""}))
	assert.False(t, isSectionHeader([]string{"THIS IS A LONG HEADER NAME", "", ""}))
	assert.False(t, isSectionHeader([]string{"1234", "", ""}))
}
