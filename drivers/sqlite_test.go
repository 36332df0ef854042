package drivers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohitpandey15/esg-chatbot/grid"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	db := &SQLite{}
	url := "sqlite://" + filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, db.Connect(url))
	t.Cleanup(func() { db.Close() })

	_, err := db.DB().Exec(`
		CREATE TABLE production (
			parameters TEXT,
			april REAL,
			may REAL
		);
		INSERT INTO production VALUES
			('Liquid Steel', 1050, 980.5),
			('Rolled Coils', NULL, 700);
	`)
	require.NoError(t, err)
	return db
}

func TestExecuteQueryTypedValues(t *testing.T) {
	db := openTestDB(t)

	ds, err := db.ExecuteQuery(context.Background(), "Query Result", "SELECT * FROM production ORDER BY parameters DESC")
	require.NoError(t, err)

	assert.Equal(t, "Query Result", ds.Title())
	assert.Equal(t, []string{"parameters", "april", "may"}, ds.Columns())
	require.Equal(t, 2, ds.Len())

	first := ds.Records()[0]
	assert.Equal(t, grid.KindString, first.Value("parameters").Kind())
	assert.Equal(t, grid.KindNull, first.Value("april").Kind())
	assert.Equal(t, grid.KindNumber, first.Value("may").Kind())
	assert.Equal(t, "700", first.Value("may").String())
}

func TestTablesSkipInternal(t *testing.T) {
	db := openTestDB(t)

	tables, err := db.Tables()
	require.NoError(t, err)
	assert.Equal(t, []string{"production"}, tables)
}

func TestTableColumns(t *testing.T) {
	db := openTestDB(t)

	cols, err := db.TableColumns("production")
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, "parameters", cols[0].Name)
	assert.Equal(t, "TEXT", cols[0].DataType)
	assert.Equal(t, "REAL", cols[1].DataType)
	assert.True(t, cols[0].Nullable)
}

func TestSchemaContext(t *testing.T) {
	db := openTestDB(t)

	ctx, err := SchemaContext(db)
	require.NoError(t, err)
	assert.Contains(t, ctx, "Table: production")
	assert.Contains(t, ctx, "parameters (TEXT)")
	assert.Contains(t, ctx, "april (REAL)")
}

func TestValidateReadOnly(t *testing.T) {
	assert.NoError(t, ValidateReadOnly("SELECT 1"))
	assert.NoError(t, ValidateReadOnly("  select * from production"))

	assert.ErrorIs(t, ValidateReadOnly("DROP TABLE production"), ErrNotSelect)
	assert.ErrorIs(t, ValidateReadOnly("UPDATE production SET april = 0"), ErrNotSelect)
	assert.ErrorIs(t, ValidateReadOnly(""), ErrNotSelect)
}

func TestSQLiteFilePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"sqlite:///tmp/esg.db", "/tmp/esg.db"},
		{"sqlite://esg.db", "esg.db"},
		{"file:esg.db", "esg.db"},
		{"esg.db", "esg.db"},
	}
	for _, c := range cases {
		got, err := sqliteFilePath(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}

	_, err := sqliteFilePath("sqlite://")
	assert.Error(t, err)
}

func TestOpenResolvesSQLite(t *testing.T) {
	url := "sqlite://" + filepath.Join(t.TempDir(), "open.db")
	d, err := Open(url)
	require.NoError(t, err)
	defer d.Close()

	_, ok := d.(*SQLite)
	assert.True(t, ok)
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, err := Open("bolt://localhost:7687")
	assert.Error(t, err)
}
